// Copyright © 2026 Notemon

// Package status declares error constants returned by the notes
// key-value layer.
package status

import "github.com/notemon/notemon/pkg/errors"

var (
	// ErrKeyNotFound indicates that a key is absent from a reference's note
	ErrKeyNotFound = errors.New("key not found")

	// ErrMalformedNote indicates that a persisted note body is not a JSON object
	ErrMalformedNote = errors.New("malformed note data")

	// ErrUnsupportedValue indicates a value with no JSON representation
	ErrUnsupportedValue = errors.New("value has no JSON representation")

	// ErrSessionClosed indicates use of a session after Close
	ErrSessionClosed = errors.New("session is closed")

	// ErrCommitFailed indicates that one or more references failed to commit locally
	ErrCommitFailed = errors.New("commit of note failed")

	// ErrPushFailed indicates that local commits succeeded but replication to the remote did not
	ErrPushFailed = errors.New("push of notes failed, local commits are intact")
)
