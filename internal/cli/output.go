package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"mcpapp/internal/lineage"
)

// OutputFormat represents the supported output formats for list commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide adds the argument and MIME type columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat returns an error listing the valid formats when
// format is not one of them.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, wide, json, yaml)", format)
	}
}

const (
	descLengthNormal = 60
	descLengthWide   = 50
)

// noCategory is shown for items that carry no category tag.
const noCategory = "-"

// ItemRow is one listed tool, prompt or resource.
type ItemRow struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	URI         string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Args        string `json:"-" yaml:"-"`
}

// ToolRows converts listed tools into rows sorted by name.
func ToolRows(tools []mcp.Tool) []ItemRow {
	rows := make([]ItemRow, 0, len(tools))
	for _, t := range tools {
		row := ItemRow{Name: t.Name, Category: noCategory, Description: t.Description}
		if m, err := lineage.ToolMetadataFromTool(t); err == nil {
			row.Category = m.Type
		}
		row.Args = countArgs(len(t.InputSchema.Properties), len(t.InputSchema.Required))
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

// PromptRows converts listed prompts into rows sorted by name.
func PromptRows(prompts []mcp.Prompt) []ItemRow {
	rows := make([]ItemRow, 0, len(prompts))
	for _, p := range prompts {
		row := ItemRow{Name: p.Name, Category: noCategory, Description: p.Description}
		if m, err := lineage.PromptMetadataFromPrompt(p); err == nil {
			row.Category = m.Type
		}
		required := 0
		for _, arg := range p.Arguments {
			if arg.Required {
				required++
			}
		}
		row.Args = countArgs(len(p.Arguments), required)
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

// ResourceRows converts listed resources into rows sorted by name.
func ResourceRows(resources []mcp.Resource) []ItemRow {
	rows := make([]ItemRow, 0, len(resources))
	for _, r := range resources {
		row := ItemRow{
			Name:        r.Name,
			Category:    noCategory,
			URI:         r.URI,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		}
		if m, err := lineage.ResourceMetadataFromResource(r); err == nil {
			row.Category = m.Type
		}
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

func sortRows(rows []ItemRow) {
	slices.SortFunc(rows, func(a, b ItemRow) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.URI, b.URI)
	})
}

// countArgs renders "total (required req)" or "-" when there are none.
func countArgs(total, required int) string {
	if total == 0 {
		return "-"
	}
	if required == 0 {
		return fmt.Sprintf("%d", total)
	}
	return fmt.Sprintf("%d (%d req)", total, required)
}

// FormatItems writes rows of the given kind ("tool", "prompt" or "resource")
// to w in the requested format.
func FormatItems(w io.Writer, kind string, rows []ItemRow, format OutputFormat, noHeaders bool) error {
	switch format {
	case OutputFormatJSON:
		return writeJSON(w, rows)
	case OutputFormatYAML:
		return writeYAML(w, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintf(w, "No %ss found\n", kind)
		return nil
	}

	isWide := format == OutputFormatWide
	isResource := kind == "resource"

	tw := NewPlainTableWriter(w)
	switch {
	case isResource && isWide:
		tw.SetHeaders("name", "category", "uri", "mime type", "description")
	case isResource:
		tw.SetHeaders("name", "category", "uri")
	case isWide:
		tw.SetHeaders("name", "category", "args", "description")
	default:
		tw.SetHeaders("name", "category", "description")
	}
	tw.SetNoHeaders(noHeaders)

	for _, r := range rows {
		switch {
		case isResource && isWide:
			tw.AppendRow(r.Name, r.Category, r.URI, r.MIMEType, truncate(r.Description, descLengthWide))
		case isResource:
			tw.AppendRow(r.Name, r.Category, r.URI)
		case isWide:
			tw.AppendRow(r.Name, r.Category, r.Args, truncate(r.Description, descLengthWide))
		default:
			tw.AppendRow(r.Name, r.Category, truncate(r.Description, descLengthNormal))
		}
	}
	tw.Render()

	if !noHeaders {
		fmt.Fprintf(w, "\n%s\n", pluralize(len(rows), kind))
	}
	return nil
}

// pluralize returns "1 tool" or "5 tools".
func pluralize(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}

func writeJSON(w io.Writer, data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format as JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format as YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}
