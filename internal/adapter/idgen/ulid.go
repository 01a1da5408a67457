package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator hands out transaction record IDs. IDs drawn within the same
// millisecond still increase, so history order and ID order agree.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a generator on the wall clock.
func NewULIDGenerator() *ULIDGenerator {
	return newULIDGeneratorAt(time.Now)
}

func newULIDGeneratorAt(now func() time.Time) *ULIDGenerator {
	return &ULIDGenerator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns the next record ID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		// Monotonic space for this millisecond is exhausted.
		return ulid.Make().String()
	}
	return id.String()
}
