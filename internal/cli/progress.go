package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RunWithSpinner runs fn while a spinner with the given suffix is shown on w.
// Nothing is drawn when quiet is set or w is not a terminal. A failure is
// reported with a red line before the error is returned.
func RunWithSpinner(w io.Writer, quiet bool, suffix string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := newSpinner(w, suffix)
	if s != nil {
		s.Start()
	}

	err := fn()
	if s != nil {
		s.Stop()
	}

	if err != nil {
		fmt.Fprintf(w, "%s\n", text.FgRed.Sprint("❌ "+suffix+" failed"))
	}
	return err
}

// newSpinner returns nil unless w is a file. The spinner checks its file,
// not its writer, for a terminal.
func newSpinner(w io.Writer, suffix string) *spinner.Spinner {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = " " + suffix
	return s
}
