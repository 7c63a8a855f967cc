package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mcpapp/internal/lineage"
)

// FormatDrift renders the differences between the lineage files and the
// server as a table with one row per added or removed record.
func FormatDrift(w io.Writer, drift lineage.Drift) {
	if drift.Empty() {
		fmt.Fprintf(w, "%s %s\n", text.FgGreen.Sprint("✅"), "Lineage metadata is up to date")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FILE"),
		text.FgHiCyan.Sprint("CHANGE"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("TYPE"),
		text.FgHiCyan.Sprint("URI"),
	})

	for _, r := range drift.Tools.Added {
		t.AppendRow(driftRow(lineage.ToolsFileName, true, r.Name, r.Type, ""))
	}
	for _, r := range drift.Tools.Removed {
		t.AppendRow(driftRow(lineage.ToolsFileName, false, r.Name, r.Type, ""))
	}
	for _, r := range drift.Prompts.Added {
		t.AppendRow(driftRow(lineage.PromptsFileName, true, r.Name, r.Type, ""))
	}
	for _, r := range drift.Prompts.Removed {
		t.AppendRow(driftRow(lineage.PromptsFileName, false, r.Name, r.Type, ""))
	}
	for _, r := range drift.Resources.Added {
		t.AppendRow(driftRow(lineage.ResourcesFileName, true, r.Name, r.Type, r.URI))
	}
	for _, r := range drift.Resources.Removed {
		t.AppendRow(driftRow(lineage.ResourcesFileName, false, r.Name, r.Type, r.URI))
	}

	t.Render()
}

func driftRow(file string, added bool, name, category, uri string) table.Row {
	change := text.FgRed.Sprint("removed")
	if added {
		change = text.FgGreen.Sprint("added")
	}
	return table.Row{file, change, name, category, uri}
}

// NewDriftError returns a DriftError naming the files that differ, or nil
// when the drift is empty.
func NewDriftError(drift lineage.Drift) error {
	var files []string
	if !drift.Tools.Empty() {
		files = append(files, lineage.ToolsFileName)
	}
	if !drift.Prompts.Empty() {
		files = append(files, lineage.PromptsFileName)
	}
	if !drift.Resources.Empty() {
		files = append(files, lineage.ResourcesFileName)
	}
	if len(files) == 0 {
		return nil
	}
	return &DriftError{Files: files}
}
