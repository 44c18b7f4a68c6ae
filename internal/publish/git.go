// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// TokenEnv names the environment variable holding the push token.
const TokenEnv = "GITHUB_TOKEN"

// Committer records generated output in the git repository enclosing Dir.
type Committer struct {
	Dir     string
	Remote  string
	Message string
	Name    string
	Email   string

	// Token authenticates pushes over HTTPS. Empty pushes without auth.
	Token string

	Logger *zap.Logger
}

// NewCommitter builds a Committer for dir from cfg, reading the push token
// from TokenEnv.
func NewCommitter(dir string, cfg types.PublishConfig, logger *zap.Logger) *Committer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Committer{
		Dir:     dir,
		Remote:  cfg.Remote,
		Message: cfg.CommitMessage,
		Name:    cfg.AuthorName,
		Email:   cfg.AuthorEmail,
		Token:   os.Getenv(TokenEnv),
		Logger:  logger,
	}
}

// Commit stages every change in the worktree and commits it. It returns
// the new commit hash, or an empty string when there was nothing to commit.
func (c *Committer) Commit(now time.Time) (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging changes: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("reading status: %w", err)
	}
	if status.IsClean() {
		c.Logger.Info("no changes to commit")
		return "", nil
	}

	hash, err := wt.Commit(c.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.Name,
			Email: c.Email,
			When:  now,
		},
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	c.Logger.Info("committed generated content", zap.String("commit", hash.String()))
	return hash.String(), nil
}

// Push pushes local branches to the configured remote. An up-to-date
// remote is not an error.
func (c *Committer) Push(ctx context.Context) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	remote := c.Remote
	if remote == "" {
		remote = git.DefaultRemoteName
	}
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		Auth:       c.auth(),
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		c.Logger.Info("remote already up to date", zap.String("remote", remote))
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing to %s: %w", remote, err)
	}
	c.Logger.Info("pushed generated content", zap.String("remote", remote))
	return nil
}

func (c *Committer) auth() transport.AuthMethod {
	if c.Token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "token", Password: c.Token}
}

func (c *Committer) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(c.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", c.Dir, err)
	}
	return repo, nil
}
