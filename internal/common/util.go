package common

import (
	"strconv"
	"strings"
)

// DocLines splits a doc string into trimmed, non-empty lines.
func DocLines(doc string) []string {
	var lines []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeXML escapes the characters XML doc comments cannot hold literally.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// FitsInt32 reports whether every emitted value of e fits a 32-bit signed
// integer.
func FitsInt32(e Enum) bool {
	for _, m := range e.Emitted() {
		if _, err := strconv.ParseInt(m.Value, 10, 32); err != nil {
			return false
		}
	}
	return true
}
