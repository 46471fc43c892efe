// Copyright © 2026 Notemon

// Package gitcli implements the backend Store over the git command
// line, the way the notes machinery is normally driven:
//
//	git --no-pager -C <repo> notes --ref <notesref> show|add|remove ...
//
// Exit codes and stderr text are classified into the backend status
// sentinels so callers never see raw exec errors.
package gitcli

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notemon/notemon/pkg/backend"
	"github.com/notemon/notemon/pkg/backend/status"
)

// DefaultNotesRef is the ref git-notes uses unless told otherwise.
const DefaultNotesRef = "refs/notes/commits"

// Option is a functor to build a git backend with some options
type Option func(*gitStore)

// NotesRef selects the notes ref to read and write. It defaults to
// DefaultNotesRef.
func NotesRef(ref string) Option {
	return func(g *gitStore) {
		if ref != "" {
			g.notesRef = ref
		}
	}
}

// GitPath overrides the git executable to invoke.
func GitPath(path string) Option {
	return func(g *gitStore) {
		if path != "" {
			g.gitPath = path
		}
	}
}

// Logger sets a logger for the backend. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(g *gitStore) {
		if l != nil {
			g.l = l
		}
	}
}

type gitStore struct {
	repoPath string
	notesRef string
	gitPath  string
	l        *zap.Logger
}

// New builds a git backend over the working copy at repoPath, failing
// with status.ErrRepoNotFound when the path is not inside a git
// repository.
func New(repoPath string, opts ...Option) (backend.Store, error) {
	g := &gitStore{
		repoPath: repoPath,
		notesRef: DefaultNotesRef,
		gitPath:  "git",
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(g)
	}
	if _, _, err := g.run(context.Background(), "rev-parse", "--git-dir"); err != nil {
		return nil, status.ErrRepoNotFound.Wrap(pkgerrors.Wrapf(err, "path %q", repoPath))
	}
	return g, nil
}

func (g *gitStore) String() string {
	return "gitcli@" + g.repoPath
}

// run invokes git with the repo-scoped prelude and captures both
// streams. The returned error carries the trimmed stderr.
func (g *gitStore) run(ctx context.Context, args ...string) (string, string, error) {
	full := append([]string{"--no-pager", "-C", g.repoPath}, args...)
	cmd := exec.CommandContext(ctx, g.gitPath, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	errText := strings.TrimSpace(stderr.String())
	g.l.Debug("git", zap.Strings("args", args), zap.Error(err))
	if err != nil {
		return stdout.String(), errText, pkgerrors.Wrapf(err, "git %s: %s", strings.Join(args, " "), errText)
	}
	return stdout.String(), errText, nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if pkgerrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (g *gitStore) Resolve(ctx context.Context, name string) (backend.CommitID, error) {
	out, _, err := g.run(ctx, "rev-parse", "--verify", "--quiet", name+"^{commit}")
	if err != nil {
		return "", status.ErrRefNotFound.Wrap(pkgerrors.Wrapf(err, "reference %q", name))
	}
	return backend.CommitID(strings.TrimSpace(out)), nil
}

func (g *gitStore) ReadNote(ctx context.Context, commit backend.CommitID) ([]byte, error) {
	out, _, err := g.run(ctx, "notes", "--ref", g.notesRef, "show", commit.String())
	if err != nil {
		// git notes show exits 1 when no note is attached
		if exitCode(err) == 1 {
			return nil, status.ErrNoNote.Wrapf("commit %s", commit)
		}
		return nil, err
	}
	return []byte(strings.TrimRight(out, "\n")), nil
}

func (g *gitStore) WriteNote(ctx context.Context, commit backend.CommitID, body []byte) (backend.CommitID, error) {
	if _, _, err := g.run(ctx, "notes", "--ref", g.notesRef, "add", "-f", "-m", string(body), commit.String()); err != nil {
		return "", err
	}
	out, _, err := g.run(ctx, "rev-parse", g.notesRef)
	if err != nil {
		return "", err
	}
	return backend.CommitID(strings.TrimSpace(out)), nil
}

func (g *gitStore) RemoveNote(ctx context.Context, commit backend.CommitID) error {
	_, _, err := g.run(ctx, "notes", "--ref", g.notesRef, "remove", "--ignore-missing", commit.String())
	return err
}

func (g *gitStore) PushNotes(ctx context.Context, remote string) error {
	_, errText, err := g.run(ctx, "push", remote, g.notesRef)
	if err == nil {
		return nil
	}
	lowered := strings.ToLower(errText)
	if strings.Contains(lowered, "rejected") ||
		strings.Contains(lowered, "non-fast-forward") ||
		strings.Contains(lowered, "fetch first") {
		return status.ErrPushRejected.Wrap(err)
	}
	return status.ErrRemoteUnavailable.Wrap(err)
}
