package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer accumulates generated source with indentation handling.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a writer indenting with indentString per level.
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

func (w *Writer) Indent() {
	w.indentLevel++
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
	}
}

// Write writes s, indenting it if it starts a line.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// WriteRaw writes s verbatim, ignoring indentation.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.needsIndent = strings.HasSuffix(s, "\n")
}

func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

func (w *Writer) String() string {
	return w.sb.String()
}

// WriteTo writes the accumulated source to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.sb.String())
	return int64(n), err
}

// WriteToFile writes the accumulated source to path, creating parent
// directories as needed.
func (w *Writer) WriteToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, []byte(w.sb.String()), 0o644)
}
