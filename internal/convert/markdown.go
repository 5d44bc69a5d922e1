package convert

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/accessblock/internal/region"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
<main id="{{.Region}}">
{{.Body}}</main>
</body>
</html>
`))

// RenderMarkdown renders Markdown into a standalone page whose content
// sits inside the default region.
func RenderMarkdown(src []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert(src, &body); err != nil {
		return nil, err
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Region string
		Body   template.HTML
	}{region.DefaultID, template.HTML(body.String())})
	if err != nil {
		return nil, err
	}
	return page.Bytes(), nil
}
