package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/omario75013/tradingbot-v5/internal/config"
	"github.com/omario75013/tradingbot-v5/pkg/log"
)

// repositoryStep brings the working copy to the upstream tracked ref.
type repositoryStep struct{}

func (repositoryStep) Name() string { return "Repository synchronization" }

func (repositoryStep) Run(ctx context.Context, hc *Context) error {
	return SyncRepository(ctx, hc.Config)
}

// SyncRepository converges the install directory on the upstream tracked
// branch. Upstream is the source of truth: tracked local drift is discarded
// by a hard reset, while untracked files (the .env secrets file in
// particular) survive. No automatic retries; a failed sync is fixed by
// re-invocation.
func SyncRepository(ctx context.Context, cfg *config.Config) error {
	dir := cfg.InstallDir

	if !isCloned(dir) {
		return cloneWorkingCopy(ctx, cfg, dir)
	}
	return resetWorkingCopy(ctx, cfg, dir)
}

func isCloned(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func cloneWorkingCopy(ctx context.Context, cfg *config.Config, dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("failed to create install directory parent: %w", err)
	}

	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           cfg.RepoURL,
		ReferenceName: plumbing.NewBranchReferenceName(cfg.Branch),
	})
	if err != nil {
		return fmt.Errorf("%w: cloning %s: %v", ErrSync, cfg.RepoURL, err)
	}

	log.Info("working copy cloned", "url", cfg.RepoURL, "branch", cfg.Branch, "dir", dir)
	return nil
}

func resetWorkingCopy(ctx context.Context, cfg *config.Config, dir string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("%w: opening working copy at %s: %v", ErrSync, dir, err)
	}

	err = repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: "origin",
		Force:      true,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("%w: fetching origin: %v", ErrSync, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + cfg.Branch))
	if err != nil {
		return fmt.Errorf("%w: resolving origin/%s: %v", ErrSync, cfg.Branch, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: opening worktree: %v", ErrSync, err)
	}

	// Hard reset converges every tracked file to the upstream tree.
	// Untracked files are left alone.
	if err := wt.Reset(&gogit.ResetOptions{Mode: gogit.HardReset, Commit: *hash}); err != nil {
		return fmt.Errorf("%w: hard reset to origin/%s: %v", ErrSync, cfg.Branch, err)
	}

	log.Info("working copy reset to upstream", "branch", cfg.Branch, "commit", hash.String())
	return nil
}
