package engine

import "time"

// Pacer enforces a minimum interval between computer actions so humans can follow along.
type Pacer struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func NewPacer(interval time.Duration, now func() time.Time) *Pacer {
	if now == nil {
		now = time.Now
	}
	return &Pacer{interval: interval, now: now}
}

// Ready reports whether the interval has passed since the last Mark.
func (p *Pacer) Ready() bool {
	return p.last.IsZero() || p.now().Sub(p.last) >= p.interval
}

func (p *Pacer) Mark() {
	p.last = p.now()
}
