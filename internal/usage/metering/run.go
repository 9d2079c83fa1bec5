// Package metering implements the scheduled usage pass: walk every
// organization, find the distinct campaign owners, and append one usage
// record per owner.
package metering

import (
	"math"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Run fixes everything shared by one metering pass: a stable id for
// attribution, the timestamp every record carries, and the sampled
// quantity. Sampling once per run keeps all records of a pass comparable.
type Run struct {
	ID       string
	At       time.Time
	Quantity int64
}

// NewRun samples a single quantity in [0, scale) from draw and stamps the
// run with now. draw must return values in [0, 1).
func NewRun(now time.Time, draw func() float64, scale int64) Run {
	if scale <= 0 {
		scale = 1000
	}
	quantity := int64(math.Floor(draw() * float64(scale)))
	if quantity < 0 {
		quantity = 0
	}
	if quantity >= scale {
		quantity = scale - 1
	}
	return Run{
		ID:       ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		At:       now.UTC(),
		Quantity: quantity,
	}
}

// DefaultDraw is the production sampler.
func DefaultDraw() float64 { return rand.Float64() }
