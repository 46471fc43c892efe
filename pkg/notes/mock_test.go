package notes

import (
	"context"
	"sync"

	"github.com/notemon/notemon/pkg/backend"
	"github.com/notemon/notemon/pkg/backend/status"
)

// mockBackend is an in-memory recording backend with failure injection.
type mockBackend struct {
	mu sync.Mutex

	refs     map[string]backend.CommitID
	notes    map[backend.CommitID][]byte
	writeErr map[backend.CommitID]error
	pushErr  error

	resolves   int
	reads      int
	writes     int
	removes    int
	pushes     int
	writeOrder []backend.CommitID
}

var _ backend.Store = &mockBackend{}

func newMockBackend() *mockBackend {
	return &mockBackend{
		refs:     map[string]backend.CommitID{},
		notes:    map[backend.CommitID][]byte{},
		writeErr: map[backend.CommitID]error{},
	}
}

func (m *mockBackend) putRef(name string) backend.CommitID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := backend.MintID([]byte(name))
	m.refs[name] = id
	return id
}

func (m *mockBackend) String() string { return "mock" }

func (m *mockBackend) Resolve(_ context.Context, name string) (backend.CommitID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolves++
	id, ok := m.refs[name]
	if !ok {
		return "", status.ErrRefNotFound.Wrapf("reference %q", name)
	}
	return id, nil
}

func (m *mockBackend) ReadNote(_ context.Context, commit backend.CommitID) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	body, ok := m.notes[commit]
	if !ok {
		return nil, status.ErrNoNote.Wrapf("commit %s", commit)
	}
	return append([]byte(nil), body...), nil
}

func (m *mockBackend) WriteNote(_ context.Context, commit backend.CommitID, body []byte) (backend.CommitID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.writeOrder = append(m.writeOrder, commit)
	if err := m.writeErr[commit]; err != nil {
		return "", err
	}
	m.notes[commit] = append([]byte(nil), body...)
	return backend.MintID([]byte(commit), body), nil
}

func (m *mockBackend) RemoveNote(_ context.Context, commit backend.CommitID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removes++
	delete(m.notes, commit)
	return nil
}

func (m *mockBackend) PushNotes(_ context.Context, remote string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushes++
	return m.pushErr
}
