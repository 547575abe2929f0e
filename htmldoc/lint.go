package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements the parser closes on its own or that never take content.
var selfClosing = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true, atom.P: true, atom.Li: true, atom.Dt: true, atom.Dd: true,
	atom.Option: true, atom.Optgroup: true, atom.Tr: true, atom.Td: true,
	atom.Th: true, atom.Tbody: true, atom.Thead: true, atom.Tfoot: true,
	atom.Html: true, atom.Head: true, atom.Body: true,
}

// lint walks the raw token stream and reports markup the tree builder will
// have to repair: stray end tags, elements left open and tokenizer errors.
func lint(fragment string) []string {
	var warnings []string
	var open []string

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				warnings = append(warnings, fmt.Sprintf("tokenizer: %v", err))
			}
			for i := len(open) - 1; i >= 0; i-- {
				warnings = append(warnings, fmt.Sprintf("unclosed <%s>", open[i]))
			}
			return warnings
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !selfClosing[atom.Lookup(name)] {
				open = append(open, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if selfClosing[atom.Lookup(name)] {
				continue
			}
			idx := lastIndex(open, tag)
			if idx < 0 {
				warnings = append(warnings, fmt.Sprintf("stray </%s>", tag))
				continue
			}
			for i := len(open) - 1; i > idx; i-- {
				warnings = append(warnings, fmt.Sprintf("unclosed <%s>", open[i]))
			}
			open = open[:idx]
		}
	}
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}
