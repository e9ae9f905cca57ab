package gitops

// Client defines the git operations the bump engine needs
type Client interface {
	// IsClean reports whether the worktree has no uncommitted changes
	IsClean() (bool, error)

	// Add stages the given paths (absolute or relative to the worktree root)
	Add(paths ...string) error

	// Commit records staged changes and returns the commit hash
	Commit(message string) (string, error)

	// Tag creates an annotated tag on HEAD
	Tag(name, message string) error
}
