package lineage

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"mcpapp/pkg/logging"
)

// Set holds records of one kind. Records equal in every field collapse to one entry.
type Set[T comparable] map[T]struct{}

// NewSet returns a set containing the given records.
func NewSet[T comparable](records ...T) Set[T] {
	s := make(Set[T], len(records))
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add inserts r into the set.
func (s Set[T]) Add(r T) {
	s[r] = struct{}{}
}

// record is implemented by the three metadata kinds.
type record interface {
	comparable
	fields() map[string]string
}

func (m ToolMetadata) fields() map[string]string {
	return map[string]string{"name": m.Name, "type": m.Type}
}

func (m PromptMetadata) fields() map[string]string {
	return map[string]string{"name": m.Name, "type": m.Type}
}

func (m ResourceMetadata) fields() map[string]string {
	return map[string]string{"name": m.Name, "type": m.Type, "uri": m.URI}
}

// SaveTools writes the tool records to path, replacing any existing file.
func SaveTools(path string, tools Set[ToolMetadata]) error {
	return save(path, tools)
}

// SavePrompts writes the prompt records to path, replacing any existing file.
func SavePrompts(path string, prompts Set[PromptMetadata]) error {
	return save(path, prompts)
}

// SaveResources writes the resource records to path, replacing any existing file.
func SaveResources(path string, resources Set[ResourceMetadata]) error {
	return save(path, resources)
}

func save[T record](path string, records Set[T]) error {
	content := sortedFields(records)

	data, err := encodeYAML(content)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info("Lineage", "Saved %d items to %s", len(content), path)
	return nil
}

// sortedFields flattens records into plain mappings ordered by name.
func sortedFields[T record](records Set[T]) []map[string]string {
	content := make([]map[string]string, 0, len(records))
	for r := range records {
		content = append(content, r.fields())
	}
	slices.SortFunc(content, compareFields)
	return content
}

// sortRecords orders records the same way they are written to disk.
func sortRecords[T record](records []T) {
	slices.SortFunc(records, func(a, b T) int {
		return compareFields(a.fields(), b.fields())
	})
}

// compareFields orders by name, then type and uri so records sharing a name
// still come out in a stable order.
func compareFields(a, b map[string]string) int {
	return cmp.Or(
		cmp.Compare(a["name"], b["name"]),
		cmp.Compare(a["type"], b["type"]),
		cmp.Compare(a["uri"], b["uri"]),
	)
}

// encodeYAML renders v with two-space indentation. Map keys come out sorted.
func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
