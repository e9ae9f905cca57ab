package gitops

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, dir string, repo *gogit.Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("add "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)
}

func TestOpen_NoRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestOpen_DetectsEnclosingRepo(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "README.md", "hello")

	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0755))

	client, err := Open(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, client.Root())
}

func TestIsClean(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "README.md", "hello")

	client, err := Open(dir)
	require.NoError(t, err)

	clean, err := client.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("x"), 0644))

	clean, err = client.IsClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestAddCommitTag(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "README.md", "hello")

	client, err := Open(dir)
	require.NoError(t, err)

	// absolute path gets resolved against the worktree root
	manifest := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[project]\nversion = \"1.0.0\"\n"), 0644))
	require.NoError(t, client.Add(manifest))

	hash, err := client.Commit("bump version from 0.9.0 to 1.0.0")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	require.NoError(t, client.Tag("v1.0.0", "version 1.0.0"))

	tag, err := repo.Tag("v1.0.0")
	require.NoError(t, err)
	assert.NotNil(t, tag)

	clean, err := client.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestTag_Duplicate(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "README.md", "hello")

	client, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, client.Tag("v1.0.0", "version 1.0.0"))
	assert.Error(t, client.Tag("v1.0.0", "version 1.0.0"))
}
