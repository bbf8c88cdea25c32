package i18n

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textSource(file string, line int, id, text string) SourceMessage {
	return SourceMessage{
		ID:    id,
		Nodes: []Node{TextNode{Value: text}},
		Pos:   Position{File: file, Line: line},
	}
}

type countingObserver struct {
	mu        sync.Mutex
	units     []string
	extracted int
	skipped   int
}

func (o *countingObserver) ObserveUnit(unit string, extracted, skipped int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.units = append(o.units, unit)
	o.extracted += extracted
	o.skipped += skipped
}

func TestCollectMergesUnits(t *testing.T) {
	observer := &countingObserver{}
	collector := NewCollector(WithCollectObserver(observer))

	result, err := collector.Collect(context.Background(),
		StaticUnit{UnitName: "home", Sources: []SourceMessage{
			textSource("home.go", 3, "", "Welcome"),
			textSource("home.go", 9, "nav.back", "Back"),
		}},
		StaticUnit{UnitName: "nav", Sources: []SourceMessage{
			textSource("nav.go", 1, "", "Welcome"),
			textSource("nav.go", 4, "nav.back", "Go back"),
			textSource("nav.go", 7, "", "   "),
		}},
	)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	assert.Equal(t, []string{"Welcome", "nav.back"}, result.Catalog.IDs())
	assert.Equal(t, NextEntry{Origin: []SourceLocation{{File: "home.go", Line: 3}, {File: "nav.go", Line: 1}}}, result.Catalog["Welcome"])
	assert.Equal(t, "Back", result.Catalog["nav.back"].Defaults)
	assert.Len(t, result.Messages, 4)

	assert.ElementsMatch(t, []string{"home", "nav"}, observer.units)
	assert.Equal(t, 4, observer.extracted)
	assert.Equal(t, 1, observer.skipped)
}

func TestCollectReportsInvalidMessages(t *testing.T) {
	result, err := NewCollector().Collect(context.Background(), StaticUnit{
		UnitName: "broken",
		Sources: []SourceMessage{
			textSource("a.go", 1, "", "fine"),
			{Nodes: []Node{ChoiceNode{Kind: ChoicePlural}}, Pos: Position{File: "a.go", Line: 2}},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], ErrMissingValue)
	assert.Contains(t, result.Errors[0].Error(), "broken: a.go:2")
	assert.Equal(t, []string{"fine"}, result.Catalog.IDs())
}

type failingUnit struct{ err error }

func (failingUnit) Name() string { return "failing" }

func (u failingUnit) Messages(context.Context) ([]SourceMessage, error) { return nil, u.err }

func TestCollectAbortsOnUnitError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewCollector().Collect(context.Background(),
		StaticUnit{UnitName: "ok", Sources: []SourceMessage{textSource("a.go", 1, "", "x")}},
		failingUnit{err: boom},
	)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load failing")
}

type gatedUnit struct {
	name    string
	running *int32
	peak    *int32
}

func (u gatedUnit) Name() string { return u.name }

func (u gatedUnit) Messages(context.Context) ([]SourceMessage, error) {
	now := atomic.AddInt32(u.running, 1)
	for {
		peak := atomic.LoadInt32(u.peak)
		if now <= peak || atomic.CompareAndSwapInt32(u.peak, peak, now) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(u.running, -1)
	return []SourceMessage{textSource(u.name, 1, "", u.name)}, nil
}

func TestCollectLimit(t *testing.T) {
	var running, peak int32
	units := make([]Unit, 6)
	for i := range units {
		units[i] = gatedUnit{name: string(rune('a' + i)), running: &running, peak: &peak}
	}

	result, err := NewCollector(WithCollectLimit(2)).Collect(context.Background(), units...)
	require.NoError(t, err)

	assert.Len(t, result.Catalog, 6)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.Equal(t, "a", result.Messages[0].ID)
}

func TestNextCatalogAddKeepsFirstDefaults(t *testing.T) {
	catalog := make(NextCatalog)
	catalog.add(ExtractedMessage{ID: "k", Defaults: "first", Origin: SourceLocation{File: "a.go", Line: 1}})
	catalog.add(ExtractedMessage{ID: "k", Defaults: "second", Origin: SourceLocation{File: "b.go", Line: 2}})
	catalog.add(ExtractedMessage{ID: "bare"})

	assert.Equal(t, "first", catalog["k"].Defaults)
	assert.Len(t, catalog["k"].Origin, 2)
	assert.Equal(t, []SourceLocation{}, catalog["bare"].Origin)
}
