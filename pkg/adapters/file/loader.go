package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Extensions recognized as tree documents, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.TreeLoader over a directory of JSON and YAML files.
// The tree name is the file name without its extension.
type Loader struct {
	Dir string
}

// NewLoader creates a loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// GetTree reads the document for name, trying every known extension.
func (l *Loader) GetTree(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: invalid name %q", domain.ErrTreeNotFound, name)
	}
	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(l.Dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read tree %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, name)
}

// ListTrees returns the names of the tree documents in the directory.
func (l *Loader) ListTrees() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isTreeExt(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isTreeExt(ext string) bool {
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
