// Copyright © 2026 Notemon

// Package bdgr implements the backend Store on an embedded badger
// database. There is no real object database underneath: commit ids in
// the notes history are minted by content hash. References must be
// seeded with PutRef before they resolve. Pushing is not supported.
package bdgr

import (
	"context"
	"os"
	"sync"

	"github.com/dgraph-io/badger"

	"github.com/notemon/notemon/pkg/backend"
	"github.com/notemon/notemon/pkg/backend/status"
)

var (
	refPref  = []byte("ref:")
	notePref = []byte("note:")
)

// Store is a badger backed notes backend.
type Store struct {
	dir   string
	db    *badger.DB
	init  sync.Once
	close sync.Once
}

var _ backend.Store = &Store{}

// New creates a badger backed notes backend rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Initialize opens the underlying database.
func (b *Store) Initialize() error {
	var err error
	b.init.Do(func() {
		err = os.MkdirAll(b.dir, 0700)
		if err != nil {
			return
		}
		bopts := badger.DefaultOptions
		bopts.Dir = b.dir
		bopts.ValueDir = b.dir
		b.db, err = badger.Open(bopts)
	})
	return err
}

// Close the underlying database.
func (b *Store) Close() error {
	var err error
	b.close.Do(func() {
		if b.db != nil {
			err = b.db.Close()
			if err == nil {
				b.db = nil
			}
		}
	})
	return err
}

func (b *Store) String() string {
	return "bdgr@" + b.dir
}

func refKey(name string) []byte {
	return append(refPref[:len(refPref):len(refPref)], name...)
}

func noteKey(commit backend.CommitID) []byte {
	return append(notePref[:len(notePref):len(notePref)], commit...)
}

// PutRef records a reference, minting a stable commit id from its
// name, and returns the id it resolves to.
func (b *Store) PutRef(name string) (backend.CommitID, error) {
	if err := b.Initialize(); err != nil {
		return "", err
	}
	id := backend.MintID([]byte(name))
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(refKey(name), []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (b *Store) get(key []byte, rewrite func(error) error) ([]byte, error) {
	if err := b.Initialize(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return rewrite(err)
		}
		value, err := item.Value()
		if err != nil {
			return rewrite(err)
		}
		data = append(data[:0], value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Store) Resolve(ctx context.Context, name string) (backend.CommitID, error) {
	data, err := b.get(refKey(name), func(err error) error {
		if err == badger.ErrKeyNotFound {
			return status.ErrRefNotFound.Wrapf("reference %q", name)
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return backend.CommitID(data), nil
}

func (b *Store) ReadNote(ctx context.Context, commit backend.CommitID) ([]byte, error) {
	return b.get(noteKey(commit), func(err error) error {
		if err == badger.ErrKeyNotFound {
			return status.ErrNoNote.Wrapf("commit %s", commit)
		}
		return err
	})
}

func (b *Store) WriteNote(ctx context.Context, commit backend.CommitID, body []byte) (backend.CommitID, error) {
	if err := b.Initialize(); err != nil {
		return "", err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(noteKey(commit), body)
	})
	if err != nil {
		return "", err
	}
	return backend.MintID([]byte(commit), body), nil
}

func (b *Store) RemoveNote(ctx context.Context, commit backend.CommitID) error {
	if err := b.Initialize(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(noteKey(commit))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func (b *Store) PushNotes(ctx context.Context, remote string) error {
	return status.ErrNotSupported.Wrapf("bdgr backend has no remote %q", remote)
}
