package encode

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SheetHash returns the xxHash64 hex digest of the encoded sheet bytes.
// Identical parameters must produce identical output, so the digest is
// printed in the run summary as a cheap idempotence check.
func SheetHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
