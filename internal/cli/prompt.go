package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads lines typed at an interactive prompt.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Prompter{in: sc, out: out}
}

// Line prints label and returns the trimmed input. ok is false at end of
// input.
func (p *Prompter) Line(label string) (line string, ok bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// WithDefault is Line with a fallback for blank input.
func (p *Prompter) WithDefault(label, def string) string {
	line, ok := p.Line(fmt.Sprintf("%s [%s]: ", label, def))
	if !ok || line == "" {
		return def
	}
	return line
}

// IsExit reports whether a REPL line asks to leave.
func IsExit(line string) bool {
	switch strings.ToLower(line) {
	case "exit", "quit", "/q", "/exit":
		return true
	}
	return false
}
