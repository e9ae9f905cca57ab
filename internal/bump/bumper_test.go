package bump

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkit-cli/devkit/internal/manifest"
	"github.com/devkit-cli/devkit/internal/semver"
)

// fakeGit implements gitops.Client in memory
type fakeGit struct {
	clean     bool
	statusErr error
	added     []string
	commits   []string
	tags      []string
}

func (f *fakeGit) IsClean() (bool, error) { return f.clean, f.statusErr }

func (f *fakeGit) Add(paths ...string) error {
	f.added = append(f.added, paths...)
	return nil
}

func (f *fakeGit) Commit(message string) (string, error) {
	f.commits = append(f.commits, message)
	return "abc123", nil
}

func (f *fakeGit) Tag(name, message string) error {
	f.tags = append(f.tags, name)
	return nil
}

func writePyproject(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	content := "[project]\nname = \"demo\"\nversion = \"" + version + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_PatchBump(t *testing.T) {
	path := writePyproject(t, "1.2.3")
	git := &fakeGit{clean: true}

	engine := New(Options{
		ManifestPath: path,
		Kind:         semver.BumpPatch,
		TagPrefix:    "v",
		Git:          git,
	})

	res, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", res.Old.String())
	assert.Equal(t, "1.2.4", res.New.String())
	assert.True(t, res.Committed)
	assert.Equal(t, "v1.2.4", res.Tag)

	assert.Equal(t, []string{path}, git.added)
	assert.Equal(t, []string{"bump version from 1.2.3 to 1.2.4"}, git.commits)
	assert.Equal(t, []string{"v1.2.4"}, git.tags)

	reloaded, err := manifest.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "1.2.4", reloaded.Version().String())
}

func TestRun_MinorAndMajor(t *testing.T) {
	for kind, want := range map[string]string{
		semver.BumpMinor: "1.3.0",
		semver.BumpMajor: "2.0.0",
	} {
		path := writePyproject(t, "1.2.3")
		engine := New(Options{ManifestPath: path, Kind: kind, SkipGit: true})

		res, err := engine.Run()
		require.NoError(t, err)
		assert.Equal(t, want, res.New.String())
		assert.False(t, res.Committed)
	}
}

func TestRun_AutoDetect(t *testing.T) {
	path := writePyproject(t, "0.1.0")

	engine := New(Options{
		Dir:     filepath.Dir(path),
		Kind:    semver.BumpPatch,
		SkipGit: true,
	})

	res, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, path, res.ManifestPath)
	assert.Equal(t, "0.1.1", res.New.String())
}

func TestRun_DirtyWorktree(t *testing.T) {
	path := writePyproject(t, "1.2.3")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	engine := New(Options{
		ManifestPath: path,
		Kind:         semver.BumpPatch,
		Git:          &fakeGit{clean: false},
	})

	_, err = engine.Run()
	assert.ErrorIs(t, err, ErrDirtyWorktree)

	// manifest untouched
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_IgnoreStatus(t *testing.T) {
	path := writePyproject(t, "1.2.3")
	git := &fakeGit{clean: false}

	engine := New(Options{
		ManifestPath: path,
		Kind:         semver.BumpPatch,
		IgnoreStatus: true,
		Git:          git,
	})

	res, err := engine.Run()
	require.NoError(t, err)
	assert.True(t, res.Committed)
}

func TestRun_DryRun(t *testing.T) {
	path := writePyproject(t, "1.2.3")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	git := &fakeGit{clean: true}
	engine := New(Options{
		ManifestPath: path,
		Kind:         semver.BumpMajor,
		DryRun:       true,
		Git:          git,
	})

	res, err := engine.Run()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", res.New.String())
	assert.False(t, res.Committed)
	assert.Empty(t, git.commits)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_MalformedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	content := "[project]\nname = \"demo\"\nversion = \"abc\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	engine := New(Options{ManifestPath: path, Kind: semver.BumpPatch, SkipGit: true})

	_, err := engine.Run()
	assert.ErrorIs(t, err, manifest.ErrVersionMalformed)

	// file left byte-for-byte unchanged
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(after))
}

func TestRun_MissingManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")

	engine := New(Options{ManifestPath: path, Kind: semver.BumpPatch, SkipGit: true})

	_, err := engine.Run()
	assert.ErrorIs(t, err, manifest.ErrFileNotFound)

	// no file created
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UnknownKind(t *testing.T) {
	path := writePyproject(t, "1.2.3")

	engine := New(Options{ManifestPath: path, Kind: "build", SkipGit: true})

	_, err := engine.Run()
	assert.ErrorIs(t, err, semver.ErrUnknownKind)
}

func TestRun_StatusError(t *testing.T) {
	path := writePyproject(t, "1.2.3")
	statusErr := errors.New("status broke")

	engine := New(Options{
		ManifestPath: path,
		Kind:         semver.BumpPatch,
		Git:          &fakeGit{statusErr: statusErr},
	})

	_, err := engine.Run()
	assert.ErrorIs(t, err, statusErr)
}

func TestRun_NoRepository(t *testing.T) {
	path := writePyproject(t, "1.2.3")

	// git integration on, but the temp dir is not a repository
	engine := New(Options{
		ManifestPath: path,
		Dir:          filepath.Dir(path),
		Kind:         semver.BumpPatch,
	})

	_, err := engine.Run()
	assert.Error(t, err)
}
