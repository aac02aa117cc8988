package attribution

import (
	"testing"
	"time"
)

// zeroEntropy pins every random draw to its lower bound so derived counts
// are hand-checkable.
type zeroEntropy struct{}

func (zeroEntropy) Float64() float64 { return 0 }
func (zeroEntropy) Intn(int) int     { return 0 }

func TestGenerateDatasetWeekdayRowMath(t *testing.T) {
	anchor := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC) // a Monday
	records := GenerateDataset(GeneratorOptions{
		Anchor:     anchor,
		WindowDays: 1,
		Entropy:    zeroEntropy{},
	})
	if len(records) != weekdaySegmentRows {
		t.Fatalf("expected %d weekday rows, got %d", weekdaySegmentRows, len(records))
	}
	r := records[0]
	if !r.Date.Equal(anchor) {
		t.Fatalf("expected record date %v, got %v", anchor, r.Date)
	}
	if r.DisplayDate != "Jun 30" {
		t.Fatalf("expected display date Jun 30, got %q", r.DisplayDate)
	}
	if r.Region != "North America" || r.InboxProvider != "Google Workspace" {
		t.Fatalf("expected first domain values, got %q %q", r.Region, r.InboxProvider)
	}
	// floor(250 * 1.0 * 0.85) with the noise draw pinned to its minimum.
	if r.EmailsSent != 212 {
		t.Fatalf("expected 212 emails sent, got %d", r.EmailsSent)
	}
	if r.PlannedSent != 250 {
		t.Fatalf("expected 250 planned sent, got %d", r.PlannedSent)
	}
	if r.Replies != 3 { // floor(212 * 0.018)
		t.Fatalf("expected 3 replies, got %d", r.Replies)
	}
	if r.PlannedReplies != 5 { // floor(250 * 0.02)
		t.Fatalf("expected 5 planned replies, got %d", r.PlannedReplies)
	}
	if r.PositiveReplies != 1 { // floor(3 * 0.35)
		t.Fatalf("expected 1 positive reply, got %d", r.PositiveReplies)
	}
	if r.MeetingsBooked != 0 { // floor(1 * 0.60)
		t.Fatalf("expected 0 meetings booked, got %d", r.MeetingsBooked)
	}
	if r.Bounces != 2 { // floor(212 * 0.012) for a low-bounce provider
		t.Fatalf("expected 2 bounces, got %d", r.Bounces)
	}
	if r.PlannedBounces != 3 { // floor(250 * 0.015)
		t.Fatalf("expected 3 planned bounces, got %d", r.PlannedBounces)
	}
	if r.PipelineValue != 0 {
		t.Fatalf("expected zero pipeline with no meetings, got %d", r.PipelineValue)
	}
}

func TestGenerateDatasetWeekendRows(t *testing.T) {
	saturday := time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC)
	records := GenerateDataset(GeneratorOptions{
		Anchor:     saturday,
		WindowDays: 1,
		Entropy:    zeroEntropy{},
	})
	if len(records) != weekendSegmentRows {
		t.Fatalf("expected %d weekend rows, got %d", weekendSegmentRows, len(records))
	}
}

func TestGenerateDatasetSummerSlump(t *testing.T) {
	july := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	records := GenerateDataset(GeneratorOptions{
		Anchor:     july,
		WindowDays: 1,
		Entropy:    zeroEntropy{},
	})
	r := records[0]
	if r.EmailsSent != 42 { // floor(250 * 0.2 * 0.85)
		t.Fatalf("expected 42 emails sent in July, got %d", r.EmailsSent)
	}
	if r.PlannedSent != 50 { // floor(250 * 0.2)
		t.Fatalf("expected 50 planned sent in July, got %d", r.PlannedSent)
	}
}

func TestSeasonalityMultiplier(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		want := 1.0
		if month == time.July || month == time.August {
			want = 0.2
		}
		if got := SeasonalityMultiplier(month); got != want {
			t.Fatalf("month %v: expected %v, got %v", month, want, got)
		}
	}
	if got := SeasonalityMultiplier(time.Month(0)); got != 1.0 {
		t.Fatalf("out-of-range month should fall back to 1.0, got %v", got)
	}
}

func TestGenerateDatasetWindowSpansAnchorBackwards(t *testing.T) {
	anchor := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	records := GenerateDataset(GeneratorOptions{
		Anchor:     anchor,
		WindowDays: defaultWindowDays,
		Entropy:    zeroEntropy{},
	})
	first := records[0].Date
	last := records[len(records)-1].Date
	wantFirst := anchor.AddDate(0, 0, -(defaultWindowDays - 1))
	if !first.Equal(wantFirst) {
		t.Fatalf("expected first day %v, got %v", wantFirst, first)
	}
	if !last.Equal(anchor) {
		t.Fatalf("expected last day %v, got %v", anchor, last)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			t.Fatalf("records out of day order at index %d", i)
		}
	}
	days := AggregateByDay(records)
	if len(days) != defaultWindowDays {
		t.Fatalf("expected %d distinct days, got %d", defaultWindowDays, len(days))
	}
}

func TestGenerateDatasetFunnelInvariants(t *testing.T) {
	records := GenerateDataset(GeneratorOptions{
		Anchor:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		WindowDays: 30,
	})
	for i, r := range records {
		if r.Replies > r.EmailsSent {
			t.Fatalf("row %d: replies %d exceed emails sent %d", i, r.Replies, r.EmailsSent)
		}
		if r.PositiveReplies > r.Replies {
			t.Fatalf("row %d: positive replies %d exceed replies %d", i, r.PositiveReplies, r.Replies)
		}
		if r.MeetingsBooked > r.PositiveReplies {
			t.Fatalf("row %d: meetings %d exceed positive replies %d", i, r.MeetingsBooked, r.PositiveReplies)
		}
		if r.Bounces > r.EmailsSent {
			t.Fatalf("row %d: bounces %d exceed emails sent %d", i, r.Bounces, r.EmailsSent)
		}
		if r.PipelineValue%15000 != 0 && r.PipelineValue%50000 != 0 {
			t.Fatalf("row %d: pipeline %d is not a multiple of a meeting value", i, r.PipelineValue)
		}
		if r.PlannedReplies > r.PlannedSent {
			t.Fatalf("row %d: planned replies %d exceed planned sent %d", i, r.PlannedReplies, r.PlannedSent)
		}
		if r.PlannedMQLs > r.PlannedReplies {
			t.Fatalf("row %d: planned mqls %d exceed planned replies %d", i, r.PlannedMQLs, r.PlannedReplies)
		}
		if r.PlannedSQLs > r.PlannedMQLs {
			t.Fatalf("row %d: planned sqls %d exceed planned mqls %d", i, r.PlannedSQLs, r.PlannedMQLs)
		}
		if r.PlannedBounces > r.PlannedSent {
			t.Fatalf("row %d: planned bounces %d exceed planned sent %d", i, r.PlannedBounces, r.PlannedSent)
		}
	}
}

func TestGenerateDatasetHighBounceProvider(t *testing.T) {
	// Intn pinned to the last domain entry selects SMTP Relay and $50M+.
	records := GenerateDataset(GeneratorOptions{
		Anchor:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		WindowDays: 1,
		Entropy:    lastEntropy{},
	})
	r := records[0]
	if r.InboxProvider != "SMTP Relay" {
		t.Fatalf("expected SMTP Relay, got %q", r.InboxProvider)
	}
	if r.Bounces != 6 { // floor(212 * 0.03)
		t.Fatalf("expected 6 bounces at the elevated rate, got %d", r.Bounces)
	}
	if r.RevenueRange != "$50M+" {
		t.Fatalf("expected $50M+ revenue range, got %q", r.RevenueRange)
	}
	if want := r.MeetingsBooked * 50000; r.PipelineValue != want {
		t.Fatalf("expected premium pipeline %d, got %d", want, r.PipelineValue)
	}
}

// lastEntropy pins Intn to the last index and Float64 to zero.
type lastEntropy struct{}

func (lastEntropy) Float64() float64 { return 0 }
func (lastEntropy) Intn(n int) int   { return n - 1 }
