// Copyright © 2026 Notemon

package notes

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/notemon/notemon/pkg/notes/status"
)

// decodeNote parses a note body into the top-level key-value mapping.
//
// A nil or empty body stands for an absent note and decodes to an empty
// mapping. Anything else must be UTF-8 JSON text of a single object.
func decodeNote(body []byte) (map[string]interface{}, error) {
	if len(body) == 0 {
		return map[string]interface{}{}, nil
	}
	var raw interface{}
	if err := jsoniter.Unmarshal(body, &raw); err != nil {
		return nil, status.ErrMalformedNote.Wrap(err)
	}
	kv, ok := raw.(map[string]interface{})
	if !ok {
		return nil, status.ErrMalformedNote.Wrapf("expected a JSON object at top level, found %T", raw)
	}
	return kv, nil
}

// encodeNote serializes a top-level mapping back to a note body.
// decodeNote(encodeNote(m)) is structurally equal to m.
func encodeNote(kv map[string]interface{}) ([]byte, error) {
	body, err := jsoniter.Marshal(kv)
	if err != nil {
		return nil, status.ErrUnsupportedValue.Wrap(err)
	}
	return body, nil
}
