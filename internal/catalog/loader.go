package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mcpapp/internal/config"
	"mcpapp/pkg/logging"
)

// Catalog holds every definition found under an app directory.
type Catalog struct {
	Tools     []ToolDefinition
	Prompts   []PromptDefinition
	Resources []ResourceDefinition
}

// Load reads <appDir>/tools, <appDir>/prompts and <appDir>/resources.
// Problems in any file are reported together and nothing is returned.
func Load(appDir string) (*Catalog, error) {
	errs := config.NewConfigurationErrorCollection()

	tools, toolErrs := LoadTools(filepath.Join(appDir, string(KindTools)))
	collectErrors(errs, toolErrs)
	prompts, promptErrs := LoadPrompts(filepath.Join(appDir, string(KindPrompts)))
	collectErrors(errs, promptErrs)
	resources, resourceErrs := LoadResources(filepath.Join(appDir, string(KindResources)))
	collectErrors(errs, resourceErrs)

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return &Catalog{Tools: tools, Prompts: prompts, Resources: resources}, nil
}

func collectErrors(into *config.ConfigurationErrorCollection, err error) {
	if err == nil {
		return
	}
	if cec, ok := err.(config.ConfigurationErrorCollection); ok {
		for _, e := range cec.Errors {
			into.Add(e)
		}
		return
	}
	into.Add(config.ConfigurationError{Source: "app", ErrorType: "io", Message: err.Error()})
}

// LoadTools loads tool definitions from dir. A missing directory yields no tools.
func LoadTools(dir string) ([]ToolDefinition, error) {
	return loadDir(dir, KindTools, func(path string, d *ToolDefinition) error {
		return d.Validate()
	})
}

// LoadPrompts loads prompt definitions from dir. A missing directory yields no prompts.
func LoadPrompts(dir string) ([]PromptDefinition, error) {
	return loadDir(dir, KindPrompts, func(path string, d *PromptDefinition) error {
		return d.Validate()
	})
}

// LoadResources loads resource definitions from dir. A missing directory yields
// no resources. Relative file references are resolved against the defining file.
func LoadResources(dir string) ([]ResourceDefinition, error) {
	return loadDir(dir, KindResources, func(path string, d *ResourceDefinition) error {
		if err := d.Validate(); err != nil {
			return err
		}
		if d.File != "" && !filepath.IsAbs(d.File) {
			d.File = filepath.Join(filepath.Dir(path), d.File)
		}
		return nil
	})
}

type definition interface {
	ToolDefinition | PromptDefinition | ResourceDefinition
	key() string
}

// loadDir walks dir in lexical order. Every file holds one definition or a list.
func loadDir[T definition](dir string, kind Kind, check func(path string, d *T) error) ([]T, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logging.Debug("CatalogLoader", "Definition directory does not exist: %s", dir)
		return nil, nil
	}

	var (
		definitions []T
		seen        = make(map[string]string)
		errs        = config.NewConfigurationErrorCollection()
	)

	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isYAMLFile(path) {
			return nil
		}

		defs, err := loadFile[T](path)
		if err != nil {
			errs.Add(fileError(path, kind, "parse", err))
			return nil
		}

		for i := range defs {
			if err := check(path, &defs[i]); err != nil {
				errs.Add(fileError(path, kind, "validation", err))
				continue
			}
			key := defs[i].key()
			if previous, dup := seen[key]; dup {
				errs.Add(fileError(path, kind, "validation",
					fmt.Errorf("%q is already defined in %s", key, previous)))
				continue
			}
			seen[key] = path
			definitions = append(definitions, defs[i])
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, walkErr)
	}

	if errs.HasErrors() {
		for _, e := range errs.Errors {
			logging.Error("CatalogLoader", e, "Invalid %s definition", kind)
		}
		return nil, *errs
	}

	logging.Info("CatalogLoader", "Loaded %d %s definitions from %s", len(definitions), kind, dir)
	return definitions, nil
}

// loadFile decodes a single definition or a list of definitions.
func loadFile[T any](path string) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var defs []T
		if err := root.Decode(&defs); err != nil {
			return nil, err
		}
		return defs, nil
	}

	var def T
	if err := root.Decode(&def); err != nil {
		return nil, err
	}
	return []T{def}, nil
}

func fileError(path string, kind Kind, errorType string, err error) config.ConfigurationError {
	return config.NewConfigurationError(path, filepath.Base(path), "app", string(kind), errorType, err.Error())
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
