package notes

import (
	"context"
	"io/ioutil"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	bstatus "github.com/notemon/notemon/pkg/backend/status"
	"github.com/notemon/notemon/pkg/errors"
	"github.com/notemon/notemon/pkg/notes/status"
)

func gitRepoOrSkip(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	td, err := ioutil.TempDir("", "notemon-e2e")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(td) })

	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "test"},
		{"commit", "-q", "--allow-empty", "-m", "initial"},
	} {
		cmd := exec.Command("git", append([]string{"-C", td}, args...)...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	return td
}

func TestOpenRejectsNonRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	td, err := ioutil.TempDir("", "notemon-norepo")
	require.NoError(t, err)
	defer os.RemoveAll(td)

	_, err = Open(td)
	require.True(t, errors.Is(err, bstatus.ErrRepoNotFound))
}

func TestEndToEndOverGit(t *testing.T) {
	ctx := context.Background()
	repo := gitRepoOrSkip(t)

	sess, err := Open(repo)
	require.NoError(t, err)
	ref := sess.Ref("HEAD")
	require.NoError(t, ref.Set(ctx, "pipeline", map[string]interface{}{
		"stage":  "train",
		"inputs": []interface{}{"raw", "labels"},
	}))

	// live nested mutation before close
	v, err := ref.Get(ctx, "pipeline")
	require.NoError(t, err)
	require.NoError(t, v.(*Map).Set("stage", "eval"))

	require.NoError(t, sess.Close(ctx))

	sess2, err := Open(repo)
	require.NoError(t, err)
	got, err := sess2.Ref("HEAD").Value(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"pipeline": map[string]interface{}{
			"stage":  "eval",
			"inputs": []interface{}{"raw", "labels"},
		},
	}, got)
	require.NoError(t, sess2.Close(ctx))

	// clearing drops the note entirely
	sess3, err := Open(repo)
	require.NoError(t, err)
	require.NoError(t, sess3.Ref("HEAD").Clear(ctx))
	require.NoError(t, sess3.Close(ctx))

	sess4, err := Open(repo)
	require.NoError(t, err)
	keys, err := sess4.Ref("HEAD").Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
	require.NoError(t, sess4.Close(ctx))
}

func TestSessionOverGitSurfacesMalformedNotes(t *testing.T) {
	ctx := context.Background()
	repo := gitRepoOrSkip(t)

	cmd := exec.Command("git", "-C", repo, "notes", "add", "-f", "-m", "not json", "HEAD")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "%s", out)

	sess, err := Open(repo)
	require.NoError(t, err)
	_, err = sess.Ref("HEAD").Keys(ctx)
	require.True(t, errors.Is(err, status.ErrMalformedNote))
}
