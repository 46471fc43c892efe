// Copyright © 2026 Notemon

// Package backend declares the object store capability consumed by the
// notes key-value layer.
//
// A backend knows how to resolve a symbolic reference (branch, tag,
// object hash) to a commit id, how to read and replace the note object
// attached to a commit, and optionally how to replicate the notes
// history to a remote. Implementations are assumed to be fairly simple;
// all retry and transport policy lives below this interface.
package backend

import "context"

// CommitID identifies a commit in the underlying object store.
type CommitID string

// String of the id
func (c CommitID) String() string { return string(c) }

// Store implementations attach note objects to commits in some
// version-controlled object database.
//
// Typical implementations are the git command line, a local file tree,
// or an embedded KV database.
type Store interface {
	String() string

	// Resolve maps a reference name to a commit id.
	// Fails with status.ErrRefNotFound when the name does not resolve.
	Resolve(ctx context.Context, name string) (CommitID, error)

	// ReadNote returns the note body attached to a commit.
	// Fails with status.ErrNoNote when no note is attached: an absent
	// note is a normal condition, never materialized as "{}".
	ReadNote(ctx context.Context, commit CommitID) ([]byte, error)

	// WriteNote attaches or replaces the note on a commit, recording a
	// new commit in the notes history. The returned id identifies that
	// notes-history commit, not the annotated commit itself.
	WriteNote(ctx context.Context, commit CommitID, body []byte) (CommitID, error)

	// RemoveNote detaches the note from a commit. Removing an absent
	// note is not an error.
	RemoveNote(ctx context.Context, commit CommitID) error

	// PushNotes replicates the notes history to the named remote.
	// Fails with status.ErrRemoteUnavailable on transport failure and
	// status.ErrPushRejected on a non-fast-forward rejection.
	PushNotes(ctx context.Context, remote string) error
}
