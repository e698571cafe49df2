package diff

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/meridian-os/sdkforge/errors"
)

// RenderText prints one line per change to w, hard breaks highlighted. The
// summary line makes "no changes" explicit so a clean comparison is visible
// in build logs.
func RenderText(w io.Writer, changes []Change) {
	if len(changes) == 0 {
		fmt.Fprintln(w, pterm.LightGreen("no changes"))
		return
	}
	hard := 0
	for _, c := range changes {
		line := c.String()
		if c.Severity == SeverityHard {
			hard++
			fmt.Fprintln(w, pterm.LightRed(line))
		} else {
			fmt.Fprintln(w, pterm.Yellow(line))
		}
	}
	fmt.Fprintln(w, pterm.Gray("----"))
	fmt.Fprintf(w, "%d change(s), %d hard\n", len(changes), hard)
}

// RenderTable prints changes as a table to w.
func RenderTable(w io.Writer, changes []Change) error {
	data := pterm.TableData{
		{"SEVERITY", "KIND", "DECLARATION", "MEMBER", "BEFORE", "AFTER"},
	}
	for _, c := range changes {
		data = append(data, []string{
			string(c.Severity), string(c.Kind), c.Decl, c.Member, c.Before, c.After,
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render change table")
	}
	fmt.Fprintln(w, out)
	return nil
}

// RenderJSON writes changes as an indented JSON array. An empty change list
// encodes as [] rather than null so downstream tooling always gets an array.
func RenderJSON(w io.Writer, changes []Change) error {
	if changes == nil {
		changes = []Change{}
	}
	data, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode changes")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write changes")
	}
	return nil
}
