package attribution

import (
	"math"
	"sort"
	"time"
)

// DayAggregate holds the per-day sums of all ten funnel metrics across every
// segment row sharing that date. Aggregates are rebuilt from the full record
// list on every pass, never patched incrementally.
type DayAggregate struct {
	Date        time.Time `json:"date"`
	DisplayDate string    `json:"display_date"`

	EmailsSent      int `json:"emails_sent"`
	Replies         int `json:"replies"`
	PositiveReplies int `json:"positive_replies"`
	MeetingsBooked  int `json:"meetings_booked"`
	Bounces         int `json:"bounces"`
	PipelineValue   int `json:"estimated_pipeline_value"`

	PlannedSent    int `json:"planned_sent"`
	PlannedReplies int `json:"planned_replies"`
	PlannedMQLs    int `json:"planned_mqls"`
	PlannedSQLs    int `json:"planned_sqls"`
	PlannedBounces int `json:"planned_bounces"`
}

func (d *DayAggregate) add(r Record) {
	d.EmailsSent += r.EmailsSent
	d.Replies += r.Replies
	d.PositiveReplies += r.PositiveReplies
	d.MeetingsBooked += r.MeetingsBooked
	d.Bounces += r.Bounces
	d.PipelineValue += r.PipelineValue
	d.PlannedSent += r.PlannedSent
	d.PlannedReplies += r.PlannedReplies
	d.PlannedMQLs += r.PlannedMQLs
	d.PlannedSQLs += r.PlannedSQLs
	d.PlannedBounces += r.PlannedBounces
}

// Value extracts a metric column from the aggregate.
func (d DayAggregate) Value(m Metric) int {
	switch m {
	case MetricEmailsSent:
		return d.EmailsSent
	case MetricReplies:
		return d.Replies
	case MetricPositiveReplies:
		return d.PositiveReplies
	case MetricMeetingsBooked:
		return d.MeetingsBooked
	case MetricBounces:
		return d.Bounces
	case MetricPipelineValue:
		return d.PipelineValue
	case MetricPlannedSent:
		return d.PlannedSent
	case MetricPlannedReplies:
		return d.PlannedReplies
	case MetricPlannedMQLs:
		return d.PlannedMQLs
	case MetricPlannedSQLs:
		return d.PlannedSQLs
	case MetricPlannedBounces:
		return d.PlannedBounces
	}
	return 0
}

// AggregateByDay folds records into one aggregate per distinct date, sorted
// ascending. The sort is explicit: callers may hand in filtered or shuffled
// record lists.
func AggregateByDay(records []Record) []DayAggregate {
	byDate := make(map[time.Time]*DayAggregate)
	for _, r := range records {
		agg, ok := byDate[r.Date]
		if !ok {
			agg = &DayAggregate{Date: r.Date, DisplayDate: r.DisplayDate}
			byDate[r.Date] = agg
		}
		agg.add(r)
	}
	days := make([]DayAggregate, 0, len(byDate))
	for _, agg := range byDate {
		days = append(days, *agg)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// FunnelTotals carries the grand total of each metric across the whole
// window, independent of any grouping.
type FunnelTotals struct {
	EmailsSent      int `json:"emails_sent"`
	Replies         int `json:"replies"`
	PositiveReplies int `json:"positive_replies"`
	MeetingsBooked  int `json:"meetings_booked"`
	Bounces         int `json:"bounces"`
	PipelineValue   int `json:"estimated_pipeline_value"`

	PlannedSent    int `json:"planned_sent"`
	PlannedReplies int `json:"planned_replies"`
	PlannedMQLs    int `json:"planned_mqls"`
	PlannedSQLs    int `json:"planned_sqls"`
	PlannedBounces int `json:"planned_bounces"`
}

// Value extracts a metric column from the totals.
func (t FunnelTotals) Value(m Metric) int {
	return DayAggregate{
		EmailsSent:      t.EmailsSent,
		Replies:         t.Replies,
		PositiveReplies: t.PositiveReplies,
		MeetingsBooked:  t.MeetingsBooked,
		Bounces:         t.Bounces,
		PipelineValue:   t.PipelineValue,
		PlannedSent:     t.PlannedSent,
		PlannedReplies:  t.PlannedReplies,
		PlannedMQLs:     t.PlannedMQLs,
		PlannedSQLs:     t.PlannedSQLs,
		PlannedBounces:  t.PlannedBounces,
	}.Value(m)
}

// Totals folds the entire record list into grand totals. For every metric the
// result equals the column sum across AggregateByDay output.
func Totals(records []Record) FunnelTotals {
	var t FunnelTotals
	for _, r := range records {
		t.EmailsSent += r.EmailsSent
		t.Replies += r.Replies
		t.PositiveReplies += r.PositiveReplies
		t.MeetingsBooked += r.MeetingsBooked
		t.Bounces += r.Bounces
		t.PipelineValue += r.PipelineValue
		t.PlannedSent += r.PlannedSent
		t.PlannedReplies += r.PlannedReplies
		t.PlannedMQLs += r.PlannedMQLs
		t.PlannedSQLs += r.PlannedSQLs
		t.PlannedBounces += r.PlannedBounces
	}
	return t
}

// BreakdownEntry is one (category value, summed metric) pair.
type BreakdownEntry struct {
	Value string `json:"value"`
	Sum   int    `json:"sum"`
}

// Breakdown is the per-dimension sum of one metric, sorted descending by
// sum. Ties keep the order in which categories were first seen.
type Breakdown struct {
	Dimension Dimension        `json:"dimension"`
	Metric    Metric           `json:"metric"`
	Total     int              `json:"total"`
	Entries   []BreakdownEntry `json:"entries"`
}

// Share reports the entry's percentage of the breakdown total to one
// decimal place. A zero total yields 0 rather than dividing by zero.
func (b Breakdown) Share(entry BreakdownEntry) float64 {
	if b.Total == 0 {
		return 0
	}
	return math.Round(float64(entry.Sum)/float64(b.Total)*1000) / 10
}

// BreakdownBy folds records into per-category sums of the chosen metric plus
// a grand total across all records.
func BreakdownBy(records []Record, dim Dimension, metric Metric) Breakdown {
	b := Breakdown{Dimension: dim, Metric: metric}
	index := make(map[string]int)
	for _, r := range records {
		value := metric.Value(r)
		b.Total += value
		category := dim.Value(r)
		if pos, ok := index[category]; ok {
			b.Entries[pos].Sum += value
		} else {
			index[category] = len(b.Entries)
			b.Entries = append(b.Entries, BreakdownEntry{Value: category, Sum: value})
		}
	}
	sort.SliceStable(b.Entries, func(i, j int) bool {
		return b.Entries[i].Sum > b.Entries[j].Sum
	})
	return b
}

// seriesHeadroom scales the max of a comparison chart's two series so the
// tallest point never touches the top edge.
const seriesHeadroom = 1.1

// SeriesCeiling returns the y-axis ceiling for a comparison chart: the max
// of the actual metric and its planned counterpart across the visible window
// scaled by 1.1. Metrics without a planned pairing use the single series.
func SeriesCeiling(days []DayAggregate, metric Metric) float64 {
	max := 0
	for _, day := range days {
		if v := day.Value(metric); v > max {
			max = v
		}
		if planned, ok := PlannedCounterpart(metric); ok {
			if v := day.Value(planned); v > max {
				max = v
			}
		}
	}
	return float64(max) * seriesHeadroom
}
