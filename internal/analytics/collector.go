// Package analytics batches visit events off the request path and folds them
// into per-link click counters and visit summaries.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scmmishra/subly/internal/cloak"
	"github.com/scmmishra/subly/internal/geo"
	"github.com/scmmishra/subly/internal/registry"
)

const flushTimeout = 10 * time.Second

// Visit is one resolved request on a link subdomain.
type Visit struct {
	Subdomain string
	At        time.Time
	IP        string
	UserAgent string
	Preview   bool
}

// Recorder persists aggregated visits. *registry.Registry satisfies it.
type Recorder interface {
	RecordClick(ctx context.Context, sub string, n int64) error
	RecordVisits(ctx context.Context, sub string, visits []registry.Visit) error
}

type Collector struct {
	ch   chan Visit
	stop chan struct{}
	rec  Recorder
	geo  *geo.Reader
	done chan struct{}
}

func NewCollector(rec Recorder, geoReader *geo.Reader, bufferSize int, flushInterval time.Duration) *Collector {
	c := &Collector{
		ch:   make(chan Visit, bufferSize),
		stop: make(chan struct{}),
		rec:  rec,
		geo:  geoReader,
		done: make(chan struct{}),
	}
	go c.run(flushInterval)
	return c
}

// Push sends a visit non-blocking. Drops the event if the buffer is full.
func (c *Collector) Push(v Visit) {
	select {
	case c.ch <- v:
	default:
		log.Debug().Str("subdomain", v.Subdomain).Msg("analytics buffer full, visit dropped")
	}
}

// Shutdown flushes remaining events and returns.
func (c *Collector) Shutdown() {
	close(c.stop)
	<-c.done
}

func (c *Collector) run(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.flush()
		case <-c.stop:
			c.flush()
			return
		}
	}
}

func (c *Collector) drain() []Visit {
	var batch []Visit
	for {
		select {
		case v := <-c.ch:
			batch = append(batch, v)
		default:
			return batch
		}
	}
}

func (c *Collector) flush() {
	batch := c.drain()
	if len(batch) == 0 {
		return
	}

	// Coalesce per subdomain, keeping first-seen order.
	var order []string
	groups := make(map[string][]registry.Visit)
	for _, v := range batch {
		if _, ok := groups[v.Subdomain]; !ok {
			order = append(order, v.Subdomain)
		}
		groups[v.Subdomain] = append(groups[v.Subdomain], c.enrich(v))
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for _, sub := range order {
		visits := groups[sub]
		if err := c.rec.RecordClick(ctx, sub, int64(len(visits))); err != nil {
			log.Error().Err(err).Str("subdomain", sub).Msg("record clicks")
			continue
		}
		if err := c.rec.RecordVisits(ctx, sub, visits); err != nil {
			log.Error().Err(err).Str("subdomain", sub).Msg("record visit summary")
		}
	}
	log.Debug().Int("visits", len(batch)).Int("links", len(order)).Msg("analytics flushed")
}

func (c *Collector) enrich(v Visit) registry.Visit {
	client := cloak.Classify(v.UserAgent)
	return registry.Visit{
		At:      v.At,
		Country: c.geo.Country(v.IP),
		Device:  client.Device(),
		Crawler: v.Preview || client.Preview,
	}
}
