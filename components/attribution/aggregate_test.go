package attribution

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func day(offset int) time.Time {
	return time.Date(2025, time.June, 1+offset, 0, 0, 0, 0, time.UTC)
}

func TestAggregateByDaySumsAndSorts(t *testing.T) {
	records := []Record{
		{Date: day(1), EmailsSent: 10, Replies: 2, PlannedSent: 12},
		{Date: day(0), EmailsSent: 5, Replies: 1, PlannedSent: 6},
		{Date: day(1), EmailsSent: 7, Replies: 3, PlannedSent: 8},
	}
	days := AggregateByDay(records)
	if len(days) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(days))
	}
	if !days[0].Date.Equal(day(0)) || !days[1].Date.Equal(day(1)) {
		t.Fatalf("aggregates out of order: %v, %v", days[0].Date, days[1].Date)
	}
	second := days[1]
	if second.EmailsSent != 17 || second.Replies != 5 || second.PlannedSent != 20 {
		t.Fatalf("unexpected sums: %+v", second)
	}
}

func TestAggregateByDayMatchesTotals(t *testing.T) {
	records := GenerateDataset(GeneratorOptions{
		Anchor:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		WindowDays: 14,
		Entropy:    rand.New(rand.NewSource(7)),
	})
	days := AggregateByDay(records)
	totals := Totals(records)

	var summed FunnelTotals
	for _, d := range days {
		summed.EmailsSent += d.EmailsSent
		summed.Replies += d.Replies
		summed.PositiveReplies += d.PositiveReplies
		summed.MeetingsBooked += d.MeetingsBooked
		summed.Bounces += d.Bounces
		summed.PipelineValue += d.PipelineValue
		summed.PlannedSent += d.PlannedSent
		summed.PlannedReplies += d.PlannedReplies
		summed.PlannedMQLs += d.PlannedMQLs
		summed.PlannedSQLs += d.PlannedSQLs
		summed.PlannedBounces += d.PlannedBounces
	}
	if summed != totals {
		t.Fatalf("per-day sums %+v diverge from totals %+v", summed, totals)
	}
}

func TestAggregateByDayShuffleInvariant(t *testing.T) {
	records := GenerateDataset(GeneratorOptions{
		Anchor:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		WindowDays: 7,
		Entropy:    rand.New(rand.NewSource(11)),
	})
	want := AggregateByDay(records)

	shuffled := make([]Record, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	got := AggregateByDay(shuffled)
	if len(got) != len(want) {
		t.Fatalf("aggregate count changed after shuffle: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d diverges after shuffle: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestBreakdownByGroupsAndSorts(t *testing.T) {
	records := []Record{
		{Date: day(0), Region: "EMEA", Replies: 4},
		{Date: day(0), Region: "APAC", Replies: 10},
		{Date: day(1), Region: "EMEA", Replies: 2},
	}
	b := BreakdownBy(records, DimensionRegion, MetricReplies)
	if b.Total != 16 {
		t.Fatalf("expected total 16, got %d", b.Total)
	}
	if len(b.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b.Entries))
	}
	if b.Entries[0].Value != "APAC" || b.Entries[0].Sum != 10 {
		t.Fatalf("expected APAC first with 10, got %+v", b.Entries[0])
	}
	if b.Entries[1].Value != "EMEA" || b.Entries[1].Sum != 6 {
		t.Fatalf("expected EMEA second with 6, got %+v", b.Entries[1])
	}

	sum := 0
	for _, e := range b.Entries {
		sum += e.Sum
	}
	if sum != b.Total {
		t.Fatalf("entry sums %d diverge from total %d", sum, b.Total)
	}
}

func TestBreakdownShare(t *testing.T) {
	b := Breakdown{Total: 16, Entries: []BreakdownEntry{{Value: "APAC", Sum: 10}}}
	if got := b.Share(b.Entries[0]); got != 62.5 {
		t.Fatalf("expected 62.5%%, got %v", got)
	}
	empty := Breakdown{}
	if got := empty.Share(BreakdownEntry{Sum: 5}); got != 0 {
		t.Fatalf("zero total should yield 0, got %v", got)
	}
}

func TestSeriesCeilingCoversPlannedCounterpart(t *testing.T) {
	days := []DayAggregate{
		{EmailsSent: 100, PlannedSent: 260},
		{EmailsSent: 240, PlannedSent: 250},
	}
	got := SeriesCeiling(days, MetricEmailsSent)
	want := 260 * 1.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected ceiling %v, got %v", want, got)
	}
}

func TestSeriesCeilingWithoutPlannedPairing(t *testing.T) {
	days := []DayAggregate{
		{PipelineValue: 45000},
		{PipelineValue: 30000},
	}
	got := SeriesCeiling(days, MetricPipelineValue)
	want := 45000 * 1.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected ceiling %v, got %v", want, got)
	}
}
