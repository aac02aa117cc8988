package attribution

import (
	"math"
	"testing"
)

func TestBuildScorecardsTrend(t *testing.T) {
	totals := FunnelTotals{
		EmailsSent:  110,
		PlannedSent: 100,
	}
	cards := BuildScorecards(totals)
	if len(cards) != len(SelectableMetrics()) {
		t.Fatalf("expected %d cards, got %d", len(SelectableMetrics()), len(cards))
	}
	sent := cards[0]
	if sent.Metric != MetricEmailsSent {
		t.Fatalf("expected emails_sent first, got %s", sent.Metric)
	}
	if sent.Actual != 110 || sent.Planned != 100 {
		t.Fatalf("unexpected card values: %+v", sent)
	}
	if math.Abs(sent.Trend-0.1) > 1e-9 {
		t.Fatalf("expected trend 0.1, got %v", sent.Trend)
	}
}

func TestBuildScorecardsZeroPlannedGuard(t *testing.T) {
	cards := BuildScorecards(FunnelTotals{Replies: 40})
	for _, card := range cards {
		if card.Metric == MetricReplies {
			if card.Trend != 0 {
				t.Fatalf("expected zero trend with nothing planned, got %v", card.Trend)
			}
			return
		}
	}
	t.Fatal("replies card missing")
}

func TestBuildScorecardsIncludesBounces(t *testing.T) {
	totals := FunnelTotals{Bounces: 30, PlannedBounces: 40}
	for _, card := range BuildScorecards(totals) {
		if card.Metric != MetricBounces {
			continue
		}
		if card.Actual != 30 || card.Planned != 40 {
			t.Fatalf("unexpected bounce card: %+v", card)
		}
		if math.Abs(card.Trend-(-0.25)) > 1e-9 {
			t.Fatalf("expected trend -0.25, got %v", card.Trend)
		}
		return
	}
	t.Fatal("bounces card missing")
}
