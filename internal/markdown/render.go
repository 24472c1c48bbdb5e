package markdown

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	rendererInstance goldmark.Markdown
	rendererOnce     sync.Once
)

func renderer() goldmark.Markdown {
	rendererOnce.Do(func() {
		rendererInstance = goldmark.New(goldmark.WithExtensions(extension.Linkify))
	})
	return rendererInstance
}

// ToHTML renders a chat reply. Raw HTML in the input is not passed through.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := renderer().Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
