package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Output is the process stdout, buffered unless it is a terminal.
// Flush must be called before exiting.
type Output struct {
	io.Writer
	buf *bufio.Writer
}

func NewOutput(f *os.File) *Output {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return &Output{Writer: f}
	}
	buf := bufio.NewWriter(f)
	return &Output{Writer: buf, buf: buf}
}

func (o *Output) Flush() error {
	if o.buf == nil {
		return nil
	}
	return o.buf.Flush()
}
