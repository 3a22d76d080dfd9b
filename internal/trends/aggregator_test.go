package trends

import (
	"context"
	"testing"
	"time"

	"github.com/fedwatch/fedwatch/internal/models"
)

// fakeFetcher returns scripted counts keyed by category name and records
// the order and time of invocations.
type fakeFetcher struct {
	counts    map[string]models.Count
	callOrder []string
	callTimes []time.Time
	cancelOn  string
	cancel    context.CancelFunc
}

func (f *fakeFetcher) FetchCategoryCount(ctx context.Context, category models.Category, location string) models.RawCountResult {
	f.callOrder = append(f.callOrder, category.Name)
	f.callTimes = append(f.callTimes, time.Now())
	if f.cancelOn == category.Name && f.cancel != nil {
		f.cancel()
	}
	return models.RawCountResult{
		Category:  category.Name,
		Keywords:  category.Query(),
		Location:  location,
		Count:     f.counts[category.Name],
		Timestamp: time.Now().UTC(),
	}
}

func testCategories() []models.Category {
	return []models.Category{
		{Name: "tech", Keywords: []string{"developer"}},
		{Name: "retail", Keywords: []string{"cashier"}},
		{Name: "healthcare", Keywords: []string{"nurse"}},
	}
}

func TestAggregateAll(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[string]models.Count{
		"tech":       models.NewCount(120),
		"retail":     models.NewCount(80),
		"healthcare": models.NewCount(45),
	}}
	agg := NewAggregator(fetcher, time.Millisecond)

	snap := agg.AggregateAll(context.Background(), testCategories(), "us")

	if snap.Len() != 3 {
		t.Fatalf("snapshot has %d categories, want 3", snap.Len())
	}
	if snap.Trends["tech"].Count.Value != 120 {
		t.Errorf("tech count = %d, want 120", snap.Trends["tech"].Count.Value)
	}
	wantOrder := []string{"tech", "retail", "healthcare"}
	for i, name := range wantOrder {
		if fetcher.callOrder[i] != name {
			t.Errorf("call order[%d] = %s, want %s", i, fetcher.callOrder[i], name)
		}
		if snap.Categories[i] != name {
			t.Errorf("insertion order[%d] = %s, want %s", i, snap.Categories[i], name)
		}
	}
	if snap.Timestamp.IsZero() {
		t.Error("snapshot timestamp not set")
	}
}

func TestAggregateAllOmitsUnknown(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[string]models.Count{
		"tech":       models.NewCount(120),
		"retail":     models.UnknownCount(),
		"healthcare": models.NewCount(45),
	}}
	agg := NewAggregator(fetcher, time.Millisecond)

	snap := agg.AggregateAll(context.Background(), testCategories(), "us")

	if snap.Len() != 2 {
		t.Fatalf("snapshot has %d categories, want 2", snap.Len())
	}
	if _, present := snap.Trends["retail"]; present {
		t.Error("failed category must be absent from the snapshot, not a placeholder")
	}
	// The failed category was still attempted.
	if len(fetcher.callOrder) != 3 {
		t.Errorf("attempted %d fetches, want 3", len(fetcher.callOrder))
	}
}

func TestAggregateAllCourtesyDelay(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[string]models.Count{
		"tech":       models.NewCount(1),
		"retail":     models.NewCount(2),
		"healthcare": models.NewCount(3),
	}}
	delay := 25 * time.Millisecond
	agg := NewAggregator(fetcher, delay)

	agg.AggregateAll(context.Background(), testCategories(), "us")

	for i := 1; i < len(fetcher.callTimes); i++ {
		gap := fetcher.callTimes[i].Sub(fetcher.callTimes[i-1])
		if gap < delay {
			t.Errorf("gap between fetch %d and %d = %v, want at least %v", i-1, i, gap, delay)
		}
	}
}

func TestAggregateAllCancellationKeepsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{
		counts: map[string]models.Count{
			"tech":       models.NewCount(120),
			"retail":     models.NewCount(80),
			"healthcare": models.NewCount(45),
		},
		cancelOn: "tech",
		cancel:   cancel,
	}
	agg := NewAggregator(fetcher, time.Millisecond)

	snap := agg.AggregateAll(ctx, testCategories(), "us")

	if snap.Len() != 1 {
		t.Fatalf("partial snapshot has %d categories, want 1", snap.Len())
	}
	if _, present := snap.Trends["tech"]; !present {
		t.Error("result collected before cancellation should remain valid")
	}
}

func TestNewAggregatorDefaultDelay(t *testing.T) {
	agg := NewAggregator(&fakeFetcher{}, 0)
	if agg.delay != DefaultCourtesyDelay {
		t.Errorf("delay = %v, want %v", agg.delay, DefaultCourtesyDelay)
	}
}
