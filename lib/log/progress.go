package log

import (
	"fmt"
	"io"
	"os"
)

// Progress prints "step...Done" lines for the init and teardown sequence
type Progress struct {
	out io.Writer
}

func NewProgress(out io.Writer) *Progress {
	if out == nil {
		out = os.Stdout
	}
	return &Progress{out: out}
}

func (p *Progress) Step(msg string) {
	fmt.Fprintf(p.out, "%s...", msg)
}

func (p *Progress) Done() {
	fmt.Fprintln(p.out, "Done")
}

func (p *Progress) Failed(err error) {
	fmt.Fprintf(p.out, "Failed: %s\n", err)
}

// Run wraps fn in Step and Done/Failed
func (p *Progress) Run(msg string, fn func() error) error {
	p.Step(msg)
	err := fn()
	if err != nil {
		p.Failed(err)
		return err
	}
	p.Done()
	return nil
}
