package wikitext

import (
	"regexp"
	"strings"
)

// openTagPattern matches an opening HTML-like tag at the start of the
// input: name, optional attributes, optional self-closing slash.
var openTagPattern = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*)((?:\s[^<>]*)?)(/?)>`)

// Parse tokenizes wiki markup into a Tree. The parse never fails;
// constructs without a matching delimiter are kept as plain text.
func Parse(text string) *Tree {
	p := parser{src: text}
	return p.parse()
}

type parser struct {
	src string
}

func (p *parser) parse() *Tree {
	tree := &Tree{}
	var textStart, i int

	flush := func(end int) {
		if end > textStart {
			tree.Append(&Text{Value: p.src[textStart:end]})
		}
	}

	for i < len(p.src) {
		rest := p.src[i:]
		switch {
		case strings.HasPrefix(rest, "{{"):
			if n, length := parseTemplate(rest); n != nil {
				flush(i)
				tree.Append(n)
				i += length
				textStart = i
				continue
			}
			i += 2
		case strings.HasPrefix(rest, "[["):
			if n, length := parseLink(rest); n != nil {
				flush(i)
				tree.Append(n)
				i += length
				textStart = i
				continue
			}
			i += 2
		case strings.HasPrefix(rest, "<!--"):
			if end := strings.Index(rest[4:], "-->"); end >= 0 {
				flush(i)
				tree.Append(&Comment{Inner: rest[4 : 4+end]})
				i += 4 + end + 3
				textStart = i
				continue
			}
			i += 4
		case rest[0] == '<':
			if n, length := parseTag(rest); n != nil {
				flush(i)
				tree.Append(n)
				i += length
				textStart = i
				continue
			}
			i++
		default:
			i++
		}
	}
	flush(len(p.src))
	return tree
}

// matchDelimited finds the end of a construct opened by open and closed
// by close, counting nesting. s must begin with open. Returns the index
// just past the matching close, or -1 when unbalanced.
func matchDelimited(s, open, close string) int {
	depth := 0
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], open):
			depth++
			i += len(open)
		case strings.HasPrefix(s[i:], close):
			depth--
			i += len(close)
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

func parseTemplate(s string) (Node, int) {
	end := matchDelimited(s, "{{", "}}")
	if end < 0 {
		return nil, 0
	}
	inner := s[2 : end-2]
	name, params := inner, ""
	if i := strings.Index(inner, "|"); i >= 0 {
		name, params = inner[:i], inner[i:]
	}
	return &Template{Name: name, Params: params}, end
}

func parseLink(s string) (Node, int) {
	end := matchDelimited(s, "[[", "]]")
	if end < 0 {
		return nil, 0
	}
	inner := s[2 : end-2]
	link := &Link{Target: inner}
	if i := strings.Index(inner, "|"); i >= 0 {
		link.Target = inner[:i]
		link.Label = inner[i+1:]
		link.Piped = true
	}
	return link, end
}

func parseTag(s string) (Node, int) {
	m := openTagPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, 0
	}
	opening := m[0]
	name := strings.ToLower(m[1])
	if m[3] == "/" {
		return &Tag{Name: name, Opening: opening}, len(opening)
	}

	closePattern := regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(name) + `\s*>`)
	loc := closePattern.FindStringIndex(s[len(opening):])
	if loc == nil {
		// void tag like <br> without a closing counterpart
		return nil, 0
	}
	inner := s[len(opening) : len(opening)+loc[0]]
	closing := s[len(opening)+loc[0] : len(opening)+loc[1]]
	return &Tag{
		Name:    name,
		Opening: opening,
		Closing: closing,
		Body:    Parse(inner),
	}, len(opening) + loc[1]
}
