package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"quill/internal/source"
	"quill/internal/version"
)

// Digest identifies a cache entry.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...).
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey mixes the file content with everything that can change the
// diagnostics for the same bytes: the tool version and the bag cap.
// The path matters too since diagnostics are reported against it.
func cacheKey(file *source.File, maxDiagnostics int) Digest {
	var limit [8]byte
	binary.LittleEndian.PutUint64(limit[:], uint64(max(maxDiagnostics, 0)))
	return combineDigest(file.Hash, []byte(version.Version), []byte(version.GitCommit), limit[:], []byte(file.Path))
}
