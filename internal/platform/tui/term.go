package tui

import (
	"os"

	"golang.org/x/term"
)

// TerminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func TerminalSize() (width, height int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
