package app

import (
	"fmt"
	"io"

	"iv-go/internal/iv"
)

// ConsoleNotifier prints user-facing notices to the terminal: the CLI
// stand-in for a statusbar.
type ConsoleNotifier struct {
	out    io.Writer
	errOut io.Writer
}

// NewConsoleNotifier creates a notifier writing notices to out and
// problems to errOut.
func NewConsoleNotifier(out, errOut io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, errOut: errOut}
}

func (n *ConsoleNotifier) Info(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *ConsoleNotifier) Error(msg string) {
	fmt.Fprintln(n.errOut, msg)
}

// Compile-time check that ConsoleNotifier implements iv.Notifier interface
var _ iv.Notifier = (*ConsoleNotifier)(nil)
