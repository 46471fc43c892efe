package notes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notemon/notemon/pkg/errors"
	"github.com/notemon/notemon/pkg/notes/status"
)

func TestCodecRoundTrip(t *testing.T) {
	for _, kv := range []map[string]interface{}{
		{},
		{"a": float64(1)},
		{"s": "hello", "b": true, "n": nil},
		{"nested": map[string]interface{}{
			"list": []interface{}{float64(1), "two", map[string]interface{}{"three": float64(3)}},
		}},
	} {
		body, err := encodeNote(kv)
		require.NoError(t, err)
		back, err := decodeNote(body)
		require.NoError(t, err)
		require.Equal(t, kv, back)
	}
}

func TestCodecAbsentNote(t *testing.T) {
	kv, err := decodeNote(nil)
	require.NoError(t, err)
	require.Empty(t, kv)

	kv, err = decodeNote([]byte{})
	require.NoError(t, err)
	require.Empty(t, kv)
}

func TestCodecMalformed(t *testing.T) {
	for _, body := range []string{
		"not json at all",
		`{"unterminated": `,
		`[1, 2, 3]`,
		`"just a string"`,
		`42`,
	} {
		_, err := decodeNote([]byte(body))
		require.Error(t, err, "body %q", body)
		require.True(t, errors.Is(err, status.ErrMalformedNote), "body %q got %v", body, err)
	}
}
