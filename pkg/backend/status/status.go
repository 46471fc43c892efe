// Copyright © 2026 Notemon

// Package status declares error constants returned by
// implementations of the backend Store interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/backend and one
// of its implementations.
package status

import "github.com/notemon/notemon/pkg/errors"

var (
	// Sentinel errors returned by implementations of the interface defined by backend

	// ErrRepoNotFound indicates that the path handed to a backend does not denote a usable working copy
	ErrRepoNotFound = errors.New("repository not found")

	// ErrRefNotFound indicates that a reference name could not be resolved to a commit
	ErrRefNotFound = errors.New("reference not found")

	// ErrNoNote indicates that no note object is attached to the commit
	ErrNoNote = errors.New("no note attached")

	// ErrRemoteUnavailable indicates a transport failure while reaching the remote
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrPushRejected indicates the remote refused the notes update (e.g. non-fast-forward)
	ErrPushRejected = errors.New("push rejected by remote")

	// ErrNotSupported indicates that the backend does not support this call
	ErrNotSupported = errors.New("not supported")
)
