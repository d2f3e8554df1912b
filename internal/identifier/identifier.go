// Package identifier mints ids for newly created reference entities.
package identifier

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Generator produces opaque string ids composed of a millisecond timestamp
// and a random disambiguator, both base36. Ids are unique per kind for the
// lifetime of the process, including under rapid successive calls within
// one millisecond; assignment is serialized with a mutex so the guarantee
// holds in multithreaded hosts.
//
// The generator never consults the backend, so uniqueness against records
// created by other processes rests on the low collision probability of the
// random component. That is a known, accepted limit of the scheme.
type Generator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	now    func() time.Time

	fallback atomic.Uint64
}

// NewGenerator returns a ready Generator.
func NewGenerator() *Generator {
	return &Generator{
		issued: make(map[string]struct{}),
		now:    time.Now,
	}
}

// New returns an id for the given kind, distinct from every id this
// Generator has handed out for that kind.
func (g *Generator) New(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		id := strconv.FormatInt(g.now().UnixMilli(), 36) + g.suffix()
		key := kind + "/" + id
		if _, dup := g.issued[key]; dup {
			continue
		}
		g.issued[key] = struct{}{}
		return id
	}
}

func (g *Generator) suffix() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Entropy exhaustion is effectively unreachable, but New must
		// not fail; a monotonic counter keeps ids flowing.
		return strconv.FormatUint(g.fallback.Add(1), 36)
	}
	n := binary.BigEndian.Uint64(buf[:]) & 0xFFFFFFFFFF // 40 bits, 8 base36 chars max
	return strconv.FormatUint(n, 36)
}
