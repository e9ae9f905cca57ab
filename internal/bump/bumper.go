// Package bump implements the version-bump engine: it resolves the
// project manifest, computes the next semantic version, rewrites the
// manifest in place, and records the release in git.
package bump

import (
	"errors"
	"fmt"

	"github.com/devkit-cli/devkit/internal/gitops"
	"github.com/devkit-cli/devkit/internal/manifest"
	"github.com/devkit-cli/devkit/internal/semver"
	"github.com/devkit-cli/devkit/internal/utils"
)

// ErrDirtyWorktree indicates uncommitted changes block the bump
var ErrDirtyWorktree = errors.New("git worktree not clean; commit or stash outstanding changes, or pass --ignore-status")

// Options configures a bump run
type Options struct {
	// ManifestPath is the manifest to bump; empty means auto-detect in Dir
	ManifestPath string

	// VersionKey is the dotted keypath of the version field; empty means
	// probe well-known locations
	VersionKey string

	// Kind is the bump kind: major, minor, patch, or prerelease
	Kind string

	// TagPrefix is prepended to the new version to form the tag name
	TagPrefix string

	// SkipGit disables the commit-and-tag step entirely
	SkipGit bool

	// IgnoreStatus proceeds even when the worktree is dirty
	IgnoreStatus bool

	// DryRun computes and reports the bump without touching anything
	DryRun bool

	// Dir is the working directory for detection and git discovery
	Dir string

	// Git overrides the git client; when nil the enclosing repository
	// of Dir is opened
	Git gitops.Client

	Logger *utils.Logger
}

// Result reports the outcome of a bump run
type Result struct {
	ManifestPath string
	Old          semver.Version
	New          semver.Version
	Committed    bool
	Tag          string
}

// Engine performs version bumps
type Engine struct {
	opts Options
	log  *utils.Logger
}

// New creates a bump engine
func New(opts Options) *Engine {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	return &Engine{opts: opts, log: log.WithComponent("bump")}
}

// Run executes the bump. The manifest on disk is modified only after
// every precondition has passed; any failure before the write leaves it
// untouched, and the write itself is atomic.
func (e *Engine) Run() (*Result, error) {
	timer := utils.NewTimer()

	path := e.opts.ManifestPath
	if path == "" {
		detected, err := manifest.Detect(e.opts.Dir)
		if err != nil {
			return nil, err
		}
		path = detected
		e.log.Debug().Str("manifest", path).Msg("auto-detected manifest")
	}

	m, err := manifest.Load(path, e.opts.VersionKey)
	if err != nil {
		return nil, err
	}

	old := m.Version()
	next, err := old.Bump(e.opts.Kind)
	if err != nil {
		return nil, err
	}

	result := &Result{ManifestPath: path, Old: old, New: next}

	var git gitops.Client
	if !e.opts.SkipGit {
		git, err = e.gitClient()
		if err != nil {
			return nil, err
		}
		if !e.opts.IgnoreStatus {
			clean, err := git.IsClean()
			if err != nil {
				return nil, err
			}
			if !clean {
				return nil, ErrDirtyWorktree
			}
		}
	}

	if e.opts.DryRun {
		e.log.Info().
			Str("old", old.String()).
			Str("new", next.String()).
			Msg("dry run, nothing written")
		return result, nil
	}

	if err := m.SetVersion(next); err != nil {
		return nil, err
	}
	if err := m.Save(); err != nil {
		return nil, err
	}

	if git != nil {
		if err := git.Add(path); err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("bump version from %s to %s", old, next)
		hash, err := git.Commit(msg)
		if err != nil {
			return nil, err
		}
		result.Committed = true

		tag := next.TagString(e.opts.TagPrefix)
		if err := git.Tag(tag, "version "+next.String()); err != nil {
			return nil, err
		}
		result.Tag = tag
		e.log.Debug().Str("commit", hash).Str("tag", tag).Msg("release recorded")
	}

	e.log.Info().
		Str("old", old.String()).
		Str("new", next.String()).
		Str("elapsed", timer.Stop().String()).
		Msg("version bumped")
	return result, nil
}

func (e *Engine) gitClient() (gitops.Client, error) {
	if e.opts.Git != nil {
		return e.opts.Git, nil
	}
	return gitops.Open(e.opts.Dir)
}
