package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/entforge/entforge/compiler/load"
)

// Fingerprint returns the hex SHA-256 of the descriptor's canonical binary
// encoding. Field, variant, and attribute order are part of the encoding,
// so the fingerprint identifies the descriptor exactly as written: the
// emitter stamps it into the file header, and a rebuild from an unchanged
// descriptor reproduces the same header.
func Fingerprint(t *load.TypeDescriptor) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// Attribute values may hold nested maps; sorted keys keep the
	// encoding canonical.
	enc.SetSortMapKeys(true)
	if err := enc.Encode(t); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
