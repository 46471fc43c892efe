package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notemon/notemon/internal/rand"
)

// randomValue builds an arbitrary JSON-compatible value of bounded depth.
func randomValue(depth int) interface{} {
	choices := byte(5)
	if depth <= 0 {
		choices = 3 // scalars only
	}
	switch rand.LetterBytes(1)[0] % choices {
	case 0:
		return rand.LetterString(12)
	case 1:
		return float64(int64(rand.Bytes(1)[0]))
	case 2:
		return rand.Bytes(1)[0]%2 == 0
	case 3:
		m := map[string]interface{}{}
		for i := 0; i < 3; i++ {
			m[rand.LetterString(6)] = randomValue(depth - 1)
		}
		return m
	default:
		l := make([]interface{}, 0, 3)
		for i := 0; i < 3; i++ {
			l = append(l, randomValue(depth-1))
		}
		return l
	}
}

func TestRandomizedRoundTrip(t *testing.T) {
	ctx := context.Background()
	bk := newMockBackend()
	bk.putRef("main")

	want := map[string]interface{}{}
	sess, err := Open("", WithBackend(bk))
	require.NoError(t, err)
	ref := sess.Ref("main")
	for i := 0; i < 20; i++ {
		key := rand.LetterString(10)
		value := randomValue(3)
		want[key] = value
		require.NoError(t, ref.Set(ctx, key, value))
	}
	require.NoError(t, sess.Close(ctx))

	sess2, err := Open("", WithBackend(bk))
	require.NoError(t, err)
	got, err := sess2.Ref("main").Value(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, sess2.Close(ctx))
}
