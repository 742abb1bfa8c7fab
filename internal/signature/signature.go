// Package signature provides the deterministic fingerprint primitive used
// as a signature stand-in throughout the mandate chain.
//
// A fingerprint is NOT a cryptographic signature: there is no key and no
// verification step, anyone can recompute it. Downstream code (payment
// token derivation, mandate signatures) relies on its determinism only.
// Do not swap in real signing without revisiting those call sites.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Length of a fingerprint in hex characters.
const Length = 16

// Sign canonicalizes v to JSON with stable key ordering, hashes the
// bytes with SHA-256 and truncates to a fixed-length hex string. The
// same logical input always yields the same fingerprint.
func Sign(v any) (string, error) {
	b, err := canonicalize(v)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize payload: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:Length], nil
}

// canonicalize round-trips v through a generic JSON value so that key
// order no longer depends on struct field order; encoding/json emits
// map keys sorted.
func canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return nil, err
	}
	return json.Marshal(norm)
}
