package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/pickarick/internal/services/web/module"
)

// ComposeInput carries the modules mounted on the root mux.
type ComposeInput struct {
	Modules []module.Module
}

// Compose builds a root HTTP handler from modules. Route ownership is
// exclusive: two modules claiming the same prefix or path fail composition.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		if err := mountModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, patterns, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates route %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
	}
	for _, pattern := range patterns {
		root.Handle(pattern, mount.Handler)
	}
	return nil
}

func resolveMount(feature module.Module) (module.Mount, []string, error) {
	if feature == nil {
		return module.Mount{}, nil, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}

	patterns := make([]string, 0, len(mount.Paths)+1)
	if mount.Prefix != "" {
		if err := validatePrefix(mount.Prefix); err != nil {
			return module.Mount{}, nil, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
		}
		patterns = append(patterns, mount.Prefix)
	}
	for _, path := range mount.Paths {
		if err := validatePath(path); err != nil {
			return module.Mount{}, nil, fmt.Errorf("mount module %q has invalid path %q: %w", feature.ID(), path, err)
		}
		patterns = append(patterns, path)
	}
	if len(patterns) == 0 {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: prefix or paths are required", feature.ID())
	}
	return mount, patterns, nil
}

func validatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	if strings.TrimSpace(path) != path {
		return fmt.Errorf("path must not include surrounding whitespace")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must begin with /")
	}
	if strings.ContainsAny(path, " \t") {
		return fmt.Errorf("path must not carry a method")
	}
	return nil
}
