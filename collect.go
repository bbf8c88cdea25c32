package i18n

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Unit is one independently extractable source: a Go package, a template
// file or a fixed message list.
type Unit interface {
	Name() string
	Messages(ctx context.Context) ([]SourceMessage, error)
}

// StaticUnit serves a fixed list of messages.
type StaticUnit struct {
	UnitName string
	Sources  []SourceMessage
}

func (u StaticUnit) Name() string { return u.UnitName }

func (u StaticUnit) Messages(context.Context) ([]SourceMessage, error) {
	return u.Sources, nil
}

// CollectObserver is notified once per finished unit.
type CollectObserver interface {
	ObserveUnit(unit string, extracted, skipped int, elapsed time.Duration)
}

// CollectResult is the outcome of one extraction run.
type CollectResult struct {
	Catalog NextCatalog
	// Messages lists the extracted messages in unit order.
	Messages []ExtractedMessage
	// Errors holds one joined extraction error per failing unit.
	Errors []error
}

// Collector extracts units concurrently and folds the results into one
// NextCatalog.
type Collector struct {
	extractor *Extractor
	limit     int
	observer  CollectObserver
}

type CollectorOption func(*Collector)

// WithCollectLimit bounds the number of units extracted at once.
func WithCollectLimit(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithCollectObserver(observer CollectObserver) CollectorOption {
	return func(c *Collector) {
		c.observer = observer
	}
}

func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{extractor: NewExtractor(), limit: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type unitResult struct {
	messages []ExtractedMessage
	err      error
}

// Collect extracts every unit. A unit that cannot be loaded aborts the run;
// invalid messages are reported in CollectResult.Errors and skipped.
func (c *Collector) Collect(ctx context.Context, units ...Unit) (CollectResult, error) {
	results := make([]unitResult, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			start := time.Now()
			sources, err := unit.Messages(gctx)
			if err != nil {
				return fmt.Errorf("i18n: load %s: %w", unit.Name(), err)
			}

			messages, err := c.extractor.ExtractAll(sources)
			if err != nil {
				err = fmt.Errorf("%s: %w", unit.Name(), err)
			}
			results[i] = unitResult{messages: messages, err: err}

			if c.observer != nil {
				c.observer.ObserveUnit(unit.Name(), len(messages), len(sources)-len(messages), time.Since(start))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CollectResult{}, err
	}

	result := CollectResult{Catalog: make(NextCatalog)}
	for _, r := range results {
		if r.err != nil {
			result.Errors = append(result.Errors, r.err)
		}
		for _, msg := range r.messages {
			result.Messages = append(result.Messages, msg)
			result.Catalog.add(msg)
		}
	}
	return result, nil
}

// add records msg. Origins of repeated ids are concatenated; the first
// non-empty defaults win.
func (c NextCatalog) add(msg ExtractedMessage) {
	entry, exists := c[msg.ID]
	switch {
	case entry.Defaults == "":
		entry.Defaults = msg.Defaults
	case msg.Defaults != "" && msg.Defaults != entry.Defaults:
		Logger.Warn().
			Str("id", msg.ID).
			Str("origin", msg.Origin.String()).
			Msg("Conflicting defaults for message id, keeping the first")
	}
	if msg.Origin.File != "" {
		entry.Origin = append(entry.Origin, msg.Origin)
	}
	if !exists && entry.Origin == nil {
		entry.Origin = []SourceLocation{}
	}
	c[msg.ID] = entry
}
