package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initUpstream creates a local origin repository with one tracked file and
// returns a commit helper.
func initUpstream(t *testing.T) (string, func(name, content string)) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	commit := func(name, content string) {
		wt, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		_, err = wt.Add(name)
		require.NoError(t, err)
		_, err = wt.Commit("update "+name, &gogit.CommitOptions{
			Author: &object.Signature{Name: "upstream", Email: "upstream@example.com", When: time.Now()},
		})
		require.NoError(t, err)
	}

	commit("docker-compose.yml", "services: {}\n")
	return dir, commit
}

func TestRepositoryClonesWhenAbsent(t *testing.T) {
	upstream, _ := initUpstream(t)
	hc, _ := newTestContext(t)
	hc.Config.RepoURL = upstream

	require.NoError(t, repositoryStep{}.Run(context.Background(), hc))

	content, err := os.ReadFile(filepath.Join(hc.Config.InstallDir, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Equal(t, "services: {}\n", string(content))
}

func TestRepositoryConvergesDriftToUpstream(t *testing.T) {
	upstream, commit := initUpstream(t)
	hc, _ := newTestContext(t)
	hc.Config.RepoURL = upstream

	require.NoError(t, repositoryStep{}.Run(context.Background(), hc))

	// Local drift in a tracked file, plus an untracked secrets file.
	tracked := filepath.Join(hc.Config.InstallDir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(tracked, []byte("services:\n  hacked: {}\n"), 0o644))
	env := filepath.Join(hc.Config.InstallDir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("ANTHROPIC_API_KEY=sk-real\n"), 0o600))

	// Upstream moves forward.
	commit("docker-compose.yml", "services:\n  tradingbot: {}\n")

	require.NoError(t, repositoryStep{}.Run(context.Background(), hc))

	content, err := os.ReadFile(tracked)
	require.NoError(t, err)
	assert.Equal(t, "services:\n  tradingbot: {}\n", string(content), "tracked drift is discarded")

	secrets, err := os.ReadFile(env)
	require.NoError(t, err)
	assert.Equal(t, "ANTHROPIC_API_KEY=sk-real\n", string(secrets), "untracked secrets survive the hard reset")
}

func TestRepositorySyncFailureIsClassified(t *testing.T) {
	hc, _ := newTestContext(t)
	hc.Config.RepoURL = filepath.Join(t.TempDir(), "no-such-repo")

	err := repositoryStep{}.Run(context.Background(), hc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSync))
	assert.ErrorContains(t, err, "cloning")
}

func TestRepositoryUnknownBranchIsSyncFailure(t *testing.T) {
	upstream, _ := initUpstream(t)
	hc, _ := newTestContext(t)
	hc.Config.RepoURL = upstream
	hc.Config.Branch = "does-not-exist"

	err := repositoryStep{}.Run(context.Background(), hc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSync))
}
