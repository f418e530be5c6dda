package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose boundaries separate words, so their
// edges become spaces rather than gluing neighbors together.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "td": true,
	"th": true, "tr": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "blockquote": true,
}

// StripHTML reduces markup to the text a reader would see. Script and
// style contents are dropped entirely. Entity offsets in parse results
// refer to the stripped text, not the original markup.
func StripHTML(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed markup: return what we collected.
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				skip++
			} else if blockTags[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if skip > 0 {
					skip--
				}
			} else if blockTags[tag] {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}
