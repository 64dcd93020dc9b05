package render

import (
	"bytes"
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .BaseURL}}
<base href="{{.BaseURL}}">
{{- end}}
</head>
<body>
<div id="results-container">{{.Body}}</div>
</body>
</html>
`))

// Page wraps a region fragment into a standalone document. baseURL, when
// set, makes the service-relative image URLs resolve against the service.
func Page(title, baseURL string, body template.HTML) (template.HTML, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title   string
		BaseURL string
		Body    template.HTML
	}{title, baseURL, body})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
