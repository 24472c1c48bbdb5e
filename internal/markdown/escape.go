// Package markdown escapes untrusted text for chat messages and renders
// replies to HTML for chat backends that want formatted bodies.
package markdown

import "strings"

const specials = "*_`[]"

// Escape puts a backslash in front of every *, _, `, [ and ] in text.
// The input is scanned once, so inserted backslashes are never escaped again.
func Escape(text string) string {
	if !strings.ContainsAny(text, specials) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if strings.IndexByte(specials, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
