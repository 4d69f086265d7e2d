package main

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	okMark   = color.GreenString("✓")
	failMark = color.RedString("✗")
)

// startSpinner shows a spinner on stderr while a long step runs. It stays
// silent when stderr is not a terminal or --verbose is set, so logs and
// piped output are never interleaved with it.
func startSpinner(message string, verbose bool) func() {
	if verbose || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()

	return s.Stop
}
