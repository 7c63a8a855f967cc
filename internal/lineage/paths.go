package lineage

import "path/filepath"

// DefaultDir is where lineage files live, relative to the project root.
const DefaultDir = "lineage/mcp_item_metadata"

// File names of the three lineage exports.
const (
	ToolsFileName     = "mcp_tools.yaml"
	PromptsFileName   = "mcp_prompts.yaml"
	ResourcesFileName = "mcp_resources.yaml"
)

// Paths locates the three lineage files of one export.
type Paths struct {
	Dir string
}

// NewPaths returns the lineage paths for a project rooted at projectRoot.
func NewPaths(projectRoot string) Paths {
	return Paths{Dir: filepath.Join(projectRoot, DefaultDir)}
}

// ToolsFile is the path of the exported tool metadata.
func (p Paths) ToolsFile() string {
	return filepath.Join(p.Dir, ToolsFileName)
}

// PromptsFile is the path of the exported prompt metadata.
func (p Paths) PromptsFile() string {
	return filepath.Join(p.Dir, PromptsFileName)
}

// ResourcesFile is the path of the exported resource metadata.
func (p Paths) ResourcesFile() string {
	return filepath.Join(p.Dir, ResourcesFileName)
}
