// Copyright © 2026 Notemon

package backend

import (
	"encoding/hex"

	blake2b "github.com/minio/blake2b-simd"
)

// MintID derives a commit id from the given parts. Content-addressed
// backends without a real object database use it to record entries in
// their notes history.
func MintID(parts ...[]byte) CommitID {
	hasher := blake2b.New256()
	for _, p := range parts {
		_, _ = hasher.Write(p)
	}
	return CommitID(hex.EncodeToString(hasher.Sum(nil)))
}
