package source

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/topicmap/pkg/buildinfo"
	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/observability"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// HTTP defaults.
const (
	DefaultHTTPTimeout = 15 * time.Second
	MaxTreeBytes       = 16 << 20
)

// HTTP loads a tree with a single GET. Any non-2xx status is a load
// failure.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns a loader for rawURL using a client with DefaultHTTPTimeout.
func NewHTTP(rawURL string) *HTTP {
	return &HTTP{URL: rawURL, Client: &http.Client{Timeout: DefaultHTTPTimeout}}
}

// Name implements Loader.
func (h *HTTP) Name() string { return h.URL }

// Load implements Loader.
func (h *HTTP) Load(ctx context.Context) (*topic.Node, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, classifyNetErr(err, h.URL)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeLoadFailed, "fetch %s: %s", h.URL, resp.Status)
	}

	root, err := topic.Decode(formatFor(u.Path, resp.Header.Get("Content-Type")), io.LimitReader(resp.Body, MaxTreeBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "decode %s", h.URL)
	}
	return root, nil
}

// formatFor prefers a YAML content type, then the URL path extension.
func formatFor(path, contentType string) string {
	if strings.Contains(contentType, "yaml") {
		return topic.FormatYAML
	}
	return topic.FormatFor(path)
}

func classifyNetErr(err error, target string) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", target)
	}
	var ne interface{ Timeout() bool }
	if stderrors.As(err, &ne) && ne.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", target)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", target)
}
