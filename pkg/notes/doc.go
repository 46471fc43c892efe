// Copyright © 2026 Notemon

// Package notes implements a key-value store layered on the notes
// mechanism of a version-controlled object store.
//
// Each reference in a repository (branch, tag, object hash) acts as a
// separate store of JSON-compatible key-value pairs, persisted as the
// note attached to the commit the reference resolves to.
//
// Usage follows a session pattern:
//
//	sess, err := notes.Open("/path/to/repo", notes.WithRemotePush(true))
//	if err != nil { ... }
//	defer sess.Close(ctx)
//
//	ref := sess.Ref("main")
//	if err := ref.Set(ctx, "pipeline", map[string]interface{}{"stage": "train"}); err != nil { ... }
//	...
//	err = sess.Close(ctx) // commits dirty references, then pushes
//
// Nested containers read back from a reference are live views: writing
// through them changes what Close persists for that reference, at any
// depth. This aliasing contract is uniform across the store; use
// Value() on a view for a detached snapshot.
package notes
