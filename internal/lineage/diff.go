package lineage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadTools loads a tools lineage file. A missing file yields an empty set.
func ReadTools(path string) (Set[ToolMetadata], error) {
	return read[ToolMetadata](path)
}

// ReadPrompts loads a prompts lineage file. A missing file yields an empty set.
func ReadPrompts(path string) (Set[PromptMetadata], error) {
	return read[PromptMetadata](path)
}

// ReadResources loads a resources lineage file. A missing file yields an empty set.
func ReadResources(path string) (Set[ResourceMetadata], error) {
	return read[ResourceMetadata](path)
}

func read[T comparable](path string) (Set[T], error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Set[T]{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return NewSet(records...), nil
}

// Change lists the records added to and removed from a lineage file.
type Change[T comparable] struct {
	Added   []T
	Removed []T
}

// Empty reports whether the change carries no records.
func (c Change[T]) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Diff compares the records on disk with the current ones.
func Diff[T record](onDisk, current Set[T]) Change[T] {
	var c Change[T]
	for r := range current {
		if _, ok := onDisk[r]; !ok {
			c.Added = append(c.Added, r)
		}
	}
	for r := range onDisk {
		if _, ok := current[r]; !ok {
			c.Removed = append(c.Removed, r)
		}
	}
	sortRecords(c.Added)
	sortRecords(c.Removed)
	return c
}

// Drift holds the changes of all three lineage files.
type Drift struct {
	Tools     Change[ToolMetadata]
	Prompts   Change[PromptMetadata]
	Resources Change[ResourceMetadata]
}

// Empty reports whether every lineage file matches the server.
func (d Drift) Empty() bool {
	return d.Tools.Empty() && d.Prompts.Empty() && d.Resources.Empty()
}

// Compare collects the current records from source and diffs them against the
// files under paths. Nothing is written.
func Compare(ctx context.Context, source ItemSource, paths Paths) (Drift, error) {
	var d Drift

	tools, err := CollectTools(ctx, source)
	if err != nil {
		return d, err
	}
	savedTools, err := ReadTools(paths.ToolsFile())
	if err != nil {
		return d, err
	}
	d.Tools = Diff(savedTools, tools)

	prompts, err := CollectPrompts(ctx, source)
	if err != nil {
		return d, err
	}
	savedPrompts, err := ReadPrompts(paths.PromptsFile())
	if err != nil {
		return d, err
	}
	d.Prompts = Diff(savedPrompts, prompts)

	resources, err := CollectResources(ctx, source)
	if err != nil {
		return d, err
	}
	savedResources, err := ReadResources(paths.ResourcesFile())
	if err != nil {
		return d, err
	}
	d.Resources = Diff(savedResources, resources)

	return d, nil
}
