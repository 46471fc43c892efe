// Copyright © 2026 Notemon

package notes

import (
	"go.uber.org/zap"

	"github.com/notemon/notemon/pkg/backend"
)

// DefaultRemote is the conventional remote notes are pushed to.
const DefaultRemote = "origin"

// SessionOption is a functor to build a session with some options
type SessionOption func(*Session)

// WithRemotePush enables pushing the notes history to the remote after
// a successful Close.
func WithRemotePush(push bool) SessionOption {
	return func(s *Session) {
		s.remotePush = push
	}
}

// WithRemote names the remote used when remote push is enabled. It
// defaults to DefaultRemote.
func WithRemote(remote string) SessionOption {
	return func(s *Session) {
		if remote != "" {
			s.remote = remote
		}
	}
}

// WithBackend substitutes the object store backend driving this
// session. When set, the session path is not validated here: that is
// the backend constructor's business.
func WithBackend(store backend.Store) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

// WithNotesRef selects the notes ref the default git backend works
// against. It defaults to the conventional refs/notes/commits.
func WithNotesRef(ref string) SessionOption {
	return func(s *Session) {
		s.notesRef = ref
	}
}

// WithLogger sets a logger for the session and its default backend. It
// defaults to a no-op logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.l = l
		}
	}
}
