// Copyright © 2026 Notemon

package notes

import (
	"context"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/notemon/notemon/pkg/backend"
	"github.com/notemon/notemon/pkg/backend/gitcli"
	"github.com/notemon/notemon/pkg/notes/status"
)

// Session is the transaction boundary of the store.
//
// A session owns one handle per reference name. Mutations accumulate in
// memory and are flushed by Close: every dirty reference is committed,
// in first-requested order, one notes commit per reference, then the
// notes history is pushed when remote push was requested. Push only
// runs after every local commit succeeded, and a push failure never
// rolls local commits back.
//
// Sessions are single threaded; two sessions writing the same reference
// against the same store are last-committer-wins.
type Session struct {
	path       string
	store      backend.Store
	remote     string
	remotePush bool
	notesRef   string
	l          *zap.Logger

	refs   map[string]*Ref
	order  []string
	closed atomic.Bool
}

// Open starts a session against the working copy at path.
//
// The default backend drives the git command line; WithBackend
// substitutes any other implementation, in which case path is ignored.
// Fails with backend/status.ErrRepoNotFound when path does not denote a
// usable working copy.
func Open(path string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		path:   path,
		remote: DefaultRemote,
		l:      zap.NewNop(),
		refs:   map[string]*Ref{},
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.store == nil {
		gitOpts := []gitcli.Option{gitcli.Logger(s.l)}
		if s.notesRef != "" {
			gitOpts = append(gitOpts, gitcli.NotesRef(s.notesRef))
		}
		store, err := gitcli.New(path, gitOpts...)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	s.l.Debug("session opened", zap.String("path", path), zap.String("backend", s.store.String()))
	return s, nil
}

func (s *Session) isClosed() bool { return s.closed.Load() }

// Ref returns the handle for a reference name, creating an unloaded one
// on first request. At most one handle exists per name, so dirtiness
// from every code path aggregates on a single object.
func (s *Session) Ref(name string) *Ref {
	if r, ok := s.refs[name]; ok {
		return r
	}
	r := &Ref{session: s, name: name}
	s.refs[name] = r
	s.order = append(s.order, name)
	return r
}

// Close flushes every dirty reference and, when enabled, pushes the
// notes history to the remote.
//
// Commits are best effort: a failing reference does not stop the
// others, and all failures come back aggregated in one error. Push is
// attempted only when every local commit succeeded; its failure is
// reported as status.ErrPushFailed, distinct from commit failures,
// since local data is durable at that point.
//
// Close runs its work exactly once. Further calls are no-ops returning
// nil, so a deferred Close may back up an explicit, checked one.
func (s *Session) Close(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	var commitErrs error
	flushed := 0
	for _, name := range s.order {
		r := s.refs[name]
		if !r.loaded || !r.dirty {
			continue
		}
		if err := r.flush(ctx); err != nil {
			s.l.Error("commit of note failed", zap.String("ref", name), zap.Error(err))
			commitErrs = multierr.Append(commitErrs,
				status.ErrCommitFailed.Wrapf("reference %q: %w", name, err))
			continue
		}
		flushed++
	}
	if commitErrs != nil {
		return commitErrs
	}
	if !s.remotePush || flushed == 0 {
		return nil
	}
	if err := s.store.PushNotes(ctx, s.remote); err != nil {
		s.l.Error("push of notes failed", zap.String("remote", s.remote), zap.Error(err))
		return status.ErrPushFailed.Wrapf("remote %q: %w", s.remote, err)
	}
	s.l.Debug("notes pushed", zap.String("remote", s.remote), zap.Int("refs", flushed))
	return nil
}
