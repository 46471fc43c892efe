// Copyright © 2026 Notemon

package notes

import (
	"context"

	"go.uber.org/zap"

	"github.com/notemon/notemon/pkg/backend"
	bstatus "github.com/notemon/notemon/pkg/backend/status"
	"github.com/notemon/notemon/pkg/errors"
	"github.com/notemon/notemon/pkg/notes/status"
)

// Ref is the dictionary-like handle bound to one reference name.
//
// A Ref does no I/O until first use: the first read or write resolves
// the name, fetches the attached note and decodes it into the in-memory
// mapping. All mutations, at any nesting depth, flag the handle dirty;
// the owning session persists every dirty handle on Close, one notes
// commit per reference.
//
// Handles are obtained from Session.Ref only, which guarantees a single
// handle per name within a session.
type Ref struct {
	session *Session
	name    string

	commit backend.CommitID
	kv     map[string]interface{}
	loaded bool
	dirty  bool
}

// Item is one key-value pair of a reference's top-level mapping.
type Item struct {
	Key   string
	Value interface{}
}

// Name of the reference this handle is bound to.
func (r *Ref) Name() string { return r.name }

// Dirty reports whether the handle holds uncommitted mutations.
func (r *Ref) Dirty() bool { return r.dirty }

func (r *Ref) guard() error {
	if r.session.isClosed() {
		return status.ErrSessionClosed.Wrapf("reference %q", r.name)
	}
	return nil
}

func (r *Ref) markDirty() { r.dirty = true }

// load resolves the reference and decodes its note on first access.
// An absent note decodes to an empty mapping, not an error.
func (r *Ref) load(ctx context.Context) error {
	if err := r.guard(); err != nil {
		return err
	}
	if r.loaded {
		return nil
	}
	commit, err := r.session.store.Resolve(ctx, r.name)
	if err != nil {
		return err
	}
	body, err := r.session.store.ReadNote(ctx, commit)
	if err != nil && !errors.Is(err, bstatus.ErrNoNote) {
		return err
	}
	kv, err := decodeNote(body)
	if err != nil {
		return status.ErrMalformedNote.Wrapf("reference %q: %w", r.name, err)
	}
	r.commit = commit
	r.kv = kv
	r.loaded = true
	r.session.l.Debug("loaded note",
		zap.String("ref", r.name),
		zap.Stringer("commit", commit),
		zap.Int("keys", len(kv)),
	)
	return nil
}

// View returns the live view over the reference's top-level mapping.
func (r *Ref) View(ctx context.Context) (*Map, error) {
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return &Map{owner: r, path: nil}, nil
}

// Get returns the value stored at key, failing with
// status.ErrKeyNotFound when absent. Nested containers come back as
// live views: mutating them mutates what gets persisted for this
// reference.
func (r *Ref) Get(ctx context.Context, key string) (interface{}, error) {
	root, err := r.View(ctx)
	if err != nil {
		return nil, err
	}
	return root.Get(key)
}

// Lookup is Get with a found flag instead of an error for absent keys.
func (r *Ref) Lookup(ctx context.Context, key string) (interface{}, bool, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		if errors.Is(err, status.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Set stores a value at key and marks the handle dirty. The value must
// be JSON-compatible; anything else fails with
// status.ErrUnsupportedValue before the dirty flag is touched.
func (r *Ref) Set(ctx context.Context, key string, value interface{}) error {
	root, err := r.View(ctx)
	if err != nil {
		return err
	}
	return root.Set(key, value)
}

// Delete removes a key, failing with status.ErrKeyNotFound when absent.
func (r *Ref) Delete(ctx context.Context, key string) error {
	root, err := r.View(ctx)
	if err != nil {
		return err
	}
	return root.Delete(key)
}

// Has reports whether key is present.
func (r *Ref) Has(ctx context.Context, key string) (bool, error) {
	root, err := r.View(ctx)
	if err != nil {
		return false, err
	}
	return root.Has(key)
}

// Keys lists the top-level keys in lexical order.
func (r *Ref) Keys(ctx context.Context) ([]string, error) {
	root, err := r.View(ctx)
	if err != nil {
		return nil, err
	}
	return root.Keys()
}

// Items lists the top-level pairs in lexical key order. Container
// values are returned as live views.
func (r *Ref) Items(ctx context.Context) ([]Item, error) {
	root, err := r.View(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := root.Keys()
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		v, err := root.Get(k)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Key: k, Value: v})
	}
	return items, nil
}

// Len reports the number of top-level keys.
func (r *Ref) Len(ctx context.Context) (int, error) {
	root, err := r.View(ctx)
	if err != nil {
		return 0, err
	}
	return root.Len()
}

// Value returns a detached deep copy of the whole mapping.
func (r *Ref) Value(ctx context.Context) (map[string]interface{}, error) {
	root, err := r.View(ctx)
	if err != nil {
		return nil, err
	}
	return root.Value()
}

// Clear drops every key-value pair on this reference. On session close
// a cleared reference has its note removed rather than rewritten as an
// empty object.
func (r *Ref) Clear(ctx context.Context) error {
	if err := r.load(ctx); err != nil {
		return err
	}
	r.kv = map[string]interface{}{}
	r.markDirty()
	return nil
}

// flush commits the handle's current mapping through the backend.
// An empty mapping removes the note instead of writing "{}".
func (r *Ref) flush(ctx context.Context) error {
	if len(r.kv) == 0 {
		if err := r.session.store.RemoveNote(ctx, r.commit); err != nil {
			return err
		}
		r.dirty = false
		r.session.l.Debug("removed note", zap.String("ref", r.name), zap.Stringer("commit", r.commit))
		return nil
	}
	body, err := encodeNote(r.kv)
	if err != nil {
		return err
	}
	noteCommit, err := r.session.store.WriteNote(ctx, r.commit, body)
	if err != nil {
		return err
	}
	r.dirty = false
	r.session.l.Debug("committed note",
		zap.String("ref", r.name),
		zap.Stringer("commit", r.commit),
		zap.Stringer("note_commit", noteCommit),
		zap.Int("bytes", len(body)),
	)
	return nil
}
