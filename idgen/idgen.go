// Package idgen provides operation identifier generators.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// New returns the default generator. The IDs are globally unique, so
// measurements recorded by different processes can be correlated in one
// backend without coordination.
func New() Generator {
	return xidGenerator{}
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}

// NewSequential returns a deterministic generator whose first emitted ID is
// "1". Intended for tests that assert exact serialized output.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
}
