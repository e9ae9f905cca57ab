package gitops

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoRepository indicates no git repository encloses the given directory
var ErrNoRepository = errors.New("not a git repository")

// RealClient implements Client using go-git
type RealClient struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository enclosing dir, walking up like git does
func Open(dir string) (*RealClient, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNoRepository, dir)
		}
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	return &RealClient{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the worktree root directory
func (c *RealClient) Root() string {
	return c.root
}

// IsClean reports whether the worktree has no uncommitted changes
func (c *RealClient) IsClean() (bool, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, err
	}
	return status.IsClean(), nil
}

// Add stages the given paths. Absolute paths are resolved against the
// worktree root.
func (c *RealClient) Add(paths ...string) error {
	wt, err := c.repo.Worktree()
	if err != nil {
		return err
	}
	for _, p := range paths {
		rel := p
		if filepath.IsAbs(p) {
			rel, err = filepath.Rel(c.root, p)
			if err != nil {
				return fmt.Errorf("path %s is outside worktree %s: %w", p, c.root, err)
			}
		}
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, err)
		}
	}
	return nil
}

// Commit records staged changes and returns the commit hash
func (c *RealClient) Commit(message string) (string, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", err
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: c.signature()})
	if err != nil {
		return "", fmt.Errorf("commit failed: %w", err)
	}
	return hash.String(), nil
}

// Tag creates an annotated tag on HEAD
func (c *RealClient) Tag(name, message string) error {
	head, err := c.repo.Head()
	if err != nil {
		return err
	}
	_, err = c.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  c.signature(),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// signature builds the author identity from git config, with a fallback
// so commits never fail on a machine without user.name configured.
func (c *RealClient) signature() *object.Signature {
	sig := &object.Signature{
		Name:  "devkit",
		Email: "devkit@localhost",
		When:  time.Now(),
	}
	cfg, err := c.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
