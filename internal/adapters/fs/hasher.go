package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/hoard/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests for the module hash ledger and emitted assets.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the XXHash of data as a fixed-width hex string.
func (h *Hasher) HashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
