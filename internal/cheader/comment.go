package cheader

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// isDocComment reports whether a comment documents the declaration that
// follows it.
func isDocComment(text string) bool {
	if isTrailingDocComment(text) || text == "/**/" {
		return false
	}
	for _, p := range []string{"/**", "/*!", "///", "//!"} {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// isTrailingDocComment reports whether a comment documents the declaration
// before it on the same line.
func isTrailingDocComment(text string) bool {
	for _, p := range []string{"/**<", "/*!<", "///<", "//!<"} {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// leadingDoc returns the doc comment immediately preceding n: adjacent
// comment nodes, each ending at most one line above the next.
func leadingDoc(n *sitter.Node, src []byte) string {
	var parts []string
	row := n.StartPoint().Row
	for p := n.PrevSibling(); p != nil && p.Type() == "comment"; p = p.PrevSibling() {
		text := p.Content(src)
		if !isDocComment(text) || p.EndPoint().Row+1 < row {
			break
		}
		parts = append([]string{text}, parts...)
		row = p.StartPoint().Row
	}
	if len(parts) == 0 {
		return ""
	}
	return brief(strings.Join(parts, "\n"))
}

// trailingDoc returns a "/**<" style comment on the line n ends on.
func trailingDoc(n *sitter.Node, src []byte) string {
	s := n.NextSibling()
	if s != nil && s.Type() == "," {
		s = s.NextSibling()
	}
	if s == nil || s.Type() != "comment" || s.StartPoint().Row != n.EndPoint().Row {
		return ""
	}
	text := s.Content(src)
	if !isTrailingDocComment(text) {
		return ""
	}
	return brief(text)
}

// brief reduces a raw doc comment to its brief text: the paragraph after
// @brief or \brief, or the first paragraph. Lines are joined with spaces.
func brief(raw string) string {
	lines := commentLines(raw)

	start := -1
	for i, line := range lines {
		if cmd, rest, ok := command(line); ok && cmd == "brief" {
			lines[i] = rest
			start = i
			break
		}
	}
	if start < 0 {
		start = 0
		for start < len(lines) && lines[start] == "" {
			start++
		}
	}

	var words []string
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			if len(words) > 0 {
				break
			}
			continue
		}
		if _, _, ok := command(line); ok && i != start {
			break
		}
		words = append(words, strings.Fields(line)...)
	}
	return strings.Join(words, " ")
}

// commentLines strips comment delimiters and decoration from every line.
func commentLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		for _, p := range []string{"/**<", "/*!<", "///<", "//!<", "/**", "/*!", "///", "//!", "/*", "//"} {
			if strings.HasPrefix(line, p) {
				line = line[len(p):]
				break
			}
		}
		line = strings.TrimSuffix(strings.TrimSpace(line), "*/")
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
		out = append(out, line)
	}
	return out
}

// command splits a "@cmd rest" or "\cmd rest" line.
func command(line string) (cmd, rest string, ok bool) {
	if line == "" || (line[0] != '@' && line[0] != '\\') {
		return "", "", false
	}
	name, rest := line[1:], ""
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		name, rest = name[:i], name[i:]
	}
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(rest), true
}
