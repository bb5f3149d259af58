package diff

import (
	"github.com/google/go-cmp/cmp"
)

// Equal is a deep equality check over JSON-like values, used as a cheap
// guard before running a full comparison.
func Equal(left, right any) bool {
	return cmp.Equal(left, right)
}
