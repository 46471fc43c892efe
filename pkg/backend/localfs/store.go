// Copyright © 2026 Notemon

// Package localfs implements the backend Store on a plain file tree,
// without a real object database. References live as files under refs/
// mapping a name to a minted commit id, note bodies under notes/ keyed
// by the commit they annotate. Pushing copies the notes tree into a
// configured peer store.
//
// Intended for tests and for repositories that are not under version
// control at all.
package localfs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/notemon/notemon/pkg/backend"
	"github.com/notemon/notemon/pkg/backend/status"
)

const (
	refsDir  = "refs"
	notesDir = "notes"
)

// Option is a functor to build a localfs backend with some options
type Option func(*Store)

// Remote registers a peer backend acting as the named remote: pushing
// to that name copies every note into the peer's tree.
func Remote(name string, peer afero.Fs) Option {
	return func(l *Store) {
		l.remoteName = name
		l.remote = peer
	}
}

// Store is a file tree backed notes backend.
type Store struct {
	fs         afero.Fs
	remoteName string
	remote     afero.Fs
}

var _ backend.Store = &Store{}

// New creates a file tree backed notes backend. A nil fs defaults to
// .notemon/notes under the current directory.
func New(fs afero.Fs, opts ...Option) *Store {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(".notemon", "notes"))
	}
	l := &Store{fs: fs}
	for _, apply := range opts {
		apply(l)
	}
	return l
}

func (l *Store) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

func refKey(name string) string {
	return path.Join(refsDir, url.PathEscape(name))
}

func noteKey(commit backend.CommitID) string {
	return path.Join(notesDir, commit.String())
}

// PutRef records a reference, minting a stable commit id from its
// name, and returns the id it resolves to.
func (l *Store) PutRef(name string) (backend.CommitID, error) {
	id := backend.MintID([]byte(name))
	if err := l.fs.MkdirAll(refsDir, 0700); err != nil {
		return "", err
	}
	if err := afero.WriteFile(l.fs, refKey(name), []byte(id), 0600); err != nil {
		return "", err
	}
	return id, nil
}

func (l *Store) Resolve(ctx context.Context, name string) (backend.CommitID, error) {
	data, err := afero.ReadFile(l.fs, refKey(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", status.ErrRefNotFound.Wrapf("reference %q", name)
		}
		return "", err
	}
	return backend.CommitID(strings.TrimSpace(string(data))), nil
}

func (l *Store) ReadNote(ctx context.Context, commit backend.CommitID) ([]byte, error) {
	data, err := afero.ReadFile(l.fs, noteKey(commit))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrNoNote.Wrapf("commit %s", commit)
		}
		return nil, err
	}
	return data, nil
}

func (l *Store) WriteNote(ctx context.Context, commit backend.CommitID, body []byte) (backend.CommitID, error) {
	if err := l.fs.MkdirAll(notesDir, 0700); err != nil {
		return "", err
	}
	if err := afero.WriteFile(l.fs, noteKey(commit), body, 0600); err != nil {
		return "", err
	}
	return backend.MintID([]byte(commit), body), nil
}

func (l *Store) RemoveNote(ctx context.Context, commit backend.CommitID) error {
	if err := l.fs.Remove(noteKey(commit)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PushNotes copies the whole notes tree into the peer registered for
// the requested remote name.
func (l *Store) PushNotes(ctx context.Context, remote string) error {
	if l.remote == nil || remote != l.remoteName {
		return status.ErrRemoteUnavailable.Wrapf("no remote %q configured", remote)
	}
	exists, err := afero.DirExists(l.fs, notesDir)
	if err != nil {
		return status.ErrRemoteUnavailable.Wrap(err)
	}
	if !exists {
		return nil
	}
	if err := l.remote.MkdirAll(notesDir, 0700); err != nil {
		return status.ErrRemoteUnavailable.Wrap(err)
	}
	entries, err := afero.ReadDir(l.fs, notesDir)
	if err != nil {
		return status.ErrRemoteUnavailable.Wrap(err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key := path.Join(notesDir, entry.Name())
		data, err := afero.ReadFile(l.fs, key)
		if err != nil {
			return status.ErrRemoteUnavailable.Wrap(err)
		}
		if err := afero.WriteFile(l.remote, key, data, 0600); err != nil {
			return status.ErrRemoteUnavailable.Wrap(err)
		}
	}
	return nil
}
