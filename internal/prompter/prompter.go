package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Prompter interface {
	Confirm(question string) (bool, error)
}

// TextPrompter asks y/N questions on a line-oriented stream.
type TextPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AssumeYes makes Confirm answer yes without reading input (--yes).
func (p *TextPrompter) AssumeYes(yes bool) *TextPrompter {
	p.assumeYes = yes
	return p
}

// Confirm defaults to no: an empty line or closed input declines.
func (p *TextPrompter) Confirm(q string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", q); err != nil {
		return false, err
	}

	resp, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	r := strings.ToLower(strings.TrimSpace(resp))
	return r == "y" || r == "yes", nil
}
