package localfs

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/notemon/notemon/pkg/backend/status"
	"github.com/notemon/notemon/pkg/errors"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	st := New(afero.NewMemMapFs())

	_, err := st.Resolve(ctx, "main")
	require.True(t, errors.Is(err, status.ErrRefNotFound))

	id, err := st.PutRef("main")
	require.NoError(t, err)

	resolved, err := st.Resolve(ctx, "main")
	require.NoError(t, err)
	require.Equal(t, id, resolved)

	// ids are stable per name
	again, err := st.PutRef("main")
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	st := New(afero.NewMemMapFs())
	id, err := st.PutRef("main")
	require.NoError(t, err)

	_, err = st.ReadNote(ctx, id)
	require.True(t, errors.Is(err, status.ErrNoNote))

	histID, err := st.WriteNote(ctx, id, []byte(`{"k":"v"}`))
	require.NoError(t, err)
	require.NotEmpty(t, histID)
	require.NotEqual(t, id, histID)

	body, err := st.ReadNote(ctx, id)
	require.NoError(t, err)
	require.Equal(t, `{"k":"v"}`, string(body))

	require.NoError(t, st.RemoveNote(ctx, id))
	_, err = st.ReadNote(ctx, id)
	require.True(t, errors.Is(err, status.ErrNoNote))

	// removing twice is fine
	require.NoError(t, st.RemoveNote(ctx, id))
}

func TestRefNamesAreEscaped(t *testing.T) {
	ctx := context.Background()
	st := New(afero.NewMemMapFs())

	_, err := st.PutRef("feature/nested/branch")
	require.NoError(t, err)
	_, err = st.Resolve(ctx, "feature/nested/branch")
	require.NoError(t, err)
}

func TestPushCopiesNotesToPeer(t *testing.T) {
	ctx := context.Background()
	peer := afero.NewMemMapFs()
	st := New(afero.NewMemMapFs(), Remote("origin", peer))

	id, err := st.PutRef("main")
	require.NoError(t, err)
	_, err = st.WriteNote(ctx, id, []byte(`{"k":1}`))
	require.NoError(t, err)

	require.NoError(t, st.PushNotes(ctx, "origin"))

	remote := New(peer)
	body, err := remote.ReadNote(ctx, id)
	require.NoError(t, err)
	require.Equal(t, `{"k":1}`, string(body))
}

func TestPushWithoutRemote(t *testing.T) {
	ctx := context.Background()
	st := New(afero.NewMemMapFs())
	err := st.PushNotes(ctx, "origin")
	require.True(t, errors.Is(err, status.ErrRemoteUnavailable))

	st = New(afero.NewMemMapFs(), Remote("upstream", afero.NewMemMapFs()))
	err = st.PushNotes(ctx, "origin")
	require.True(t, errors.Is(err, status.ErrRemoteUnavailable))
}
