package core

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

// HTMLMinifier shrinks rendered pages. Static files never pass through it.
type HTMLMinifier struct {
	m *minify.M
}

func NewHTMLMinifier() *HTMLMinifier {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return &HTMLMinifier{m: m}
}

func (h *HTMLMinifier) Minify(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.m.Minify("text/html", &buf, bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("minify html: %w", err)
	}
	return buf.Bytes(), nil
}
