package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeTopicNotFound, "topic %q not found", "a")

	if err.Code != ErrCodeTopicNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTopicNotFound)
	}

	if err.Message != `topic "a" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `topic "a" not found`)
	}

	expected := `TOPIC_NOT_FOUND: topic "a" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch tree")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidID, "test"), ErrCodeInvalidID, true},
		{"non-matching code", New(ErrCodeInvalidID, "test"), ErrCodeNetwork, false},
		{"outer code", Wrap(ErrCodeLoadFailed, New(ErrCodeNetwork, "inner"), "outer"), ErrCodeLoadFailed, true},
		{"inner code", Wrap(ErrCodeLoadFailed, New(ErrCodeNetwork, "inner"), "outer"), ErrCodeNetwork, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeFileNotFound, "test"), ErrCodeFileNotFound},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v, want %v", got, "friendly message")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain error")
	}
}

func TestIsLoadFailure(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeLoadFailed, "x"), true},
		{New(ErrCodeNetwork, "x"), true},
		{New(ErrCodeFileNotFound, "x"), true},
		{New(ErrCodeInvalidFormat, "x"), true},
		{New(ErrCodeTopicNotFound, "x"), false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsLoadFailure(tt.err); got != tt.want {
			t.Errorf("IsLoadFailure(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
