package install

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks on Out and reads answers line by line from In until
// one of y, yes, n or no (any case) is given.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(in), out: out}
}

// Confirm returns the answer. End of input declines.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintln(p.out, question)
	for {
		fmt.Fprint(p.out, "Answer: ")
		if !p.in.Scan() {
			return false, p.in.Err()
		}
		switch strings.ToLower(strings.TrimSpace(p.in.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
