package ports

// TreeLoader defines how the engine retrieves tree documents.
// This allows the storage layer (FS, Memory) to be decoupled.
type TreeLoader interface {
	// GetTree retrieves the raw JSON or YAML document of a tree by name.
	// Returns domain.ErrTreeNotFound if the tree does not exist.
	GetTree(name string) ([]byte, error)

	// ListTrees returns the names of all trees available.
	// This is used for introspection and visualization tools (e.g. 'arbor serve').
	ListTrees() ([]string, error)
}
