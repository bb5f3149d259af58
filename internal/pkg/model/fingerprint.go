package model

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// Fingerprint returns a stable content hash of the mapping.
// Two snapshots with equal content produce the same fingerprint,
// so it serves as a cheap "did anything change" drift check.
func (m *Mapping) Fingerprint() (string, error) {
	hash, err := hashstructure.Hash(m, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}
