package attribution

import "testing"

func TestParseMetric(t *testing.T) {
	if m, ok := ParseMetric("meetings_booked"); !ok || m != MetricMeetingsBooked {
		t.Fatalf("expected meetings_booked to parse, got %q %v", m, ok)
	}
	if _, ok := ParseMetric("conversions"); ok {
		t.Fatal("unknown metric should not parse")
	}
}

func TestParseDimension(t *testing.T) {
	if d, ok := ParseDimension("inbox_provider"); !ok || d != DimensionInboxProvider {
		t.Fatalf("expected inbox_provider to parse, got %q %v", d, ok)
	}
	if _, ok := ParseDimension("channel"); ok {
		t.Fatal("unknown dimension should not parse")
	}
}

func TestPlannedCounterpart(t *testing.T) {
	pairs := map[Metric]Metric{
		MetricEmailsSent:      MetricPlannedSent,
		MetricReplies:         MetricPlannedReplies,
		MetricPositiveReplies: MetricPlannedMQLs,
		MetricMeetingsBooked:  MetricPlannedSQLs,
		MetricBounces:         MetricPlannedBounces,
	}
	for actual, want := range pairs {
		planned, ok := PlannedCounterpart(actual)
		if !ok || planned != want {
			t.Fatalf("%s: expected %s, got %s %v", actual, want, planned, ok)
		}
	}
	if _, ok := PlannedCounterpart(MetricPipelineValue); ok {
		t.Fatal("pipeline value has no planned pairing")
	}
}

func TestMetricValueRoundTrip(t *testing.T) {
	r := Record{
		EmailsSent:      9,
		Replies:         8,
		PositiveReplies: 7,
		MeetingsBooked:  6,
		Bounces:         5,
		PipelineValue:   90000,
		PlannedSent:     4,
		PlannedReplies:  3,
		PlannedMQLs:     2,
		PlannedSQLs:     1,
		PlannedBounces:  10,
	}
	want := map[Metric]int{
		MetricEmailsSent:      9,
		MetricReplies:         8,
		MetricPositiveReplies: 7,
		MetricMeetingsBooked:  6,
		MetricBounces:         5,
		MetricPipelineValue:   90000,
		MetricPlannedSent:     4,
		MetricPlannedReplies:  3,
		MetricPlannedMQLs:     2,
		MetricPlannedSQLs:     1,
		MetricPlannedBounces:  10,
	}
	for metric, value := range want {
		if got := metric.Value(r); got != value {
			t.Fatalf("%s: expected %d, got %d", metric, value, got)
		}
	}
}

func TestDomainFor(t *testing.T) {
	for _, dim := range Dimensions() {
		domain := DomainFor(dim)
		if len(domain) == 0 {
			t.Fatalf("dimension %s has no domain", dim)
		}
	}
	if DomainFor(Dimension("channel")) != nil {
		t.Fatal("unknown dimension should have nil domain")
	}
}
