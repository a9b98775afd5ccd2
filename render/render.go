// Package render holds terminal output helpers for the CLI commands.
package render

import (
	"io"
	"text/template"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Spinner shows progress on a TTY. Send updates into the returned
// channel and close it when done; on non-TTY writers updates are
// silently dropped.
func Spinner(cmd *cobra.Command) chan string {
	ctx := cmd.Context()
	isTTY := !color.NoColor
	var sp *spinner.Spinner
	if isTTY {
		charset := spinner.CharSets[11]
		sp = spinner.New(charset, 200*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()),
			spinner.WithColor("green"))
		sp.Start()
	}
	updates := make(chan string)
	go func() {
		if isTTY {
			defer sp.Stop()
		}
		for {
			select {
			case <-ctx.Done():
				return
			case x, hasMore := <-updates:
				if isTTY {
					// sp access is isolated to this goroutine
					sp.Suffix = " " + x
				}
				if !hasMore {
					return
				}
			}
		}
	}()
	return updates
}

func RenderTemplate(w io.Writer, tmpl string, data any) error {
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}
