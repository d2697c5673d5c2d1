package ports

// WorkspaceInitializer writes a starter topufa.yaml into root.
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
