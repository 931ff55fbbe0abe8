package page

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; color: #111827; display: grid; grid-template-columns: 1fr 360px; grid-template-rows: auto 1fr; height: 100vh; }
    #breadcrumb { grid-column: 1 / span 2; padding: 12px 16px; border-bottom: 1px solid #e5e7eb; }
    #breadcrumb a { color: #1e40af; text-decoration: none; }
    #map { overflow: hidden; }
    #map svg { width: 100%; height: 100%; cursor: grab; }
    #context { padding: 16px; border-left: 1px solid #e5e7eb; overflow-y: auto; }
    #tooltip { position: fixed; display: none; max-width: 280px; padding: 8px 10px; background: #0f172a; color: #f8fafc; border-radius: 6px; font-size: 13px; pointer-events: none; }
  </style>
</head>
<body data-state="{{.State}}">
  <nav id="breadcrumb">
    {{- range $i, $c := .Breadcrumb}}{{if $i}} &gt; {{end}}{{if $c.Current}}<strong>{{$c.Label}}</strong>{{else}}<a href="{{$c.URL}}">{{$c.Label}}</a>{{end}}{{end -}}
  </nav>
  <main id="map">{{if .Found}}{{.Map}}{{end}}</main>
  <aside id="context">
    {{- if .Panel}}
    <h3>{{.Panel.Title}}</h3>
    <p><strong>Definition</strong></p>
    {{.Panel.Definition}}
    {{- if .Panel.Role}}
    <p><strong>Role</strong></p>
    <p>{{.Panel.Role}}</p>
    {{- end}}
    {{- if .Panel.References}}
    <p><strong>References</strong></p>
    <ul class="references">
      {{- range .Panel.References}}
      <li><a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a></li>
      {{- end}}
    </ul>
    {{- end}}
    {{- if .Panel.Books}}
    <p><strong>Books</strong></p>
    <ul class="books">
      {{- range .Panel.Books}}
      <li><em>{{.Title}}</em>{{if .Byline}} — {{.Byline}}{{end}}</li>
      {{- end}}
    </ul>
    {{- end}}
    {{- else}}
    <p>{{.Message}}</p>
    {{- end}}
  </aside>
  <div id="tooltip"></div>
  {{- if .Found}}
  <script>const TOPICMAP = {{.ConfigJSON}};</script>
  <script>{{.Script}}</script>
  {{- end}}
</body>
</html>
`))
