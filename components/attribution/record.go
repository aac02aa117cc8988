package attribution

import "time"

// Record is one synthesized outreach segment row for a single day. The
// record list owned by the Service is the single source of truth; every
// aggregated view is recomputed from it.
type Record struct {
	Date        time.Time `json:"date" yaml:"date"`
	DisplayDate string    `json:"display_date" yaml:"display_date"`

	Region        string `json:"region" yaml:"region"`
	Persona       string `json:"persona" yaml:"persona"`
	InboxProvider string `json:"inbox_provider" yaml:"inbox_provider"`
	CampaignName  string `json:"campaign_name" yaml:"campaign_name"`
	TTLBucket     string `json:"ttl_bucket" yaml:"ttl_bucket"`
	RevenueRange  string `json:"revenue_range" yaml:"revenue_range"`

	EmailsSent      int `json:"emails_sent" yaml:"emails_sent"`
	Replies         int `json:"replies" yaml:"replies"`
	PositiveReplies int `json:"positive_replies" yaml:"positive_replies"`
	MeetingsBooked  int `json:"meetings_booked" yaml:"meetings_booked"`
	Bounces         int `json:"bounces" yaml:"bounces"`
	PipelineValue   int `json:"estimated_pipeline_value" yaml:"estimated_pipeline_value"`

	PlannedSent    int `json:"planned_sent" yaml:"planned_sent"`
	PlannedReplies int `json:"planned_replies" yaml:"planned_replies"`
	PlannedMQLs    int `json:"planned_mqls" yaml:"planned_mqls"`
	PlannedSQLs    int `json:"planned_sqls" yaml:"planned_sqls"`
	PlannedBounces int `json:"planned_bounces" yaml:"planned_bounces"`
}

// Metric identifies one of the ten funnel measures carried by every record.
// Runtime field selection goes through Value instead of map indexing so the
// recognized set stays closed.
type Metric string

const (
	MetricEmailsSent      Metric = "emails_sent"
	MetricReplies         Metric = "replies"
	MetricPositiveReplies Metric = "positive_replies"
	MetricMeetingsBooked  Metric = "meetings_booked"
	MetricBounces         Metric = "bounces"
	MetricPipelineValue   Metric = "estimated_pipeline_value"
	MetricPlannedSent     Metric = "planned_sent"
	MetricPlannedReplies  Metric = "planned_replies"
	MetricPlannedMQLs     Metric = "planned_mqls"
	MetricPlannedSQLs     Metric = "planned_sqls"
	MetricPlannedBounces  Metric = "planned_bounces"
)

// SelectableMetrics lists the five actual metrics the dashboard lets a
// viewer pick as the active series.
func SelectableMetrics() []Metric {
	return []Metric{
		MetricEmailsSent,
		MetricReplies,
		MetricPositiveReplies,
		MetricMeetingsBooked,
		MetricBounces,
	}
}

// ParseMetric resolves a wire/config value into a recognized Metric.
func ParseMetric(value string) (Metric, bool) {
	switch Metric(value) {
	case MetricEmailsSent, MetricReplies, MetricPositiveReplies,
		MetricMeetingsBooked, MetricBounces, MetricPipelineValue,
		MetricPlannedSent, MetricPlannedReplies, MetricPlannedMQLs,
		MetricPlannedSQLs, MetricPlannedBounces:
		return Metric(value), true
	}
	return "", false
}

var metricLabels = map[Metric]string{
	MetricEmailsSent:      "Emails Sent",
	MetricReplies:         "Replies",
	MetricPositiveReplies: "Positive Replies",
	MetricMeetingsBooked:  "Meetings Booked",
	MetricBounces:         "Bounces",
	MetricPipelineValue:   "Estimated Pipeline",
	MetricPlannedSent:     "Planned Sent",
	MetricPlannedReplies:  "Planned Replies",
	MetricPlannedMQLs:     "Planned MQLs",
	MetricPlannedSQLs:     "Planned SQLs",
	MetricPlannedBounces:  "Planned Bounces",
}

// Label returns the default display label for the metric.
func (m Metric) Label() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// Value extracts the metric from a record.
func (m Metric) Value(r Record) int {
	switch m {
	case MetricEmailsSent:
		return r.EmailsSent
	case MetricReplies:
		return r.Replies
	case MetricPositiveReplies:
		return r.PositiveReplies
	case MetricMeetingsBooked:
		return r.MeetingsBooked
	case MetricBounces:
		return r.Bounces
	case MetricPipelineValue:
		return r.PipelineValue
	case MetricPlannedSent:
		return r.PlannedSent
	case MetricPlannedReplies:
		return r.PlannedReplies
	case MetricPlannedMQLs:
		return r.PlannedMQLs
	case MetricPlannedSQLs:
		return r.PlannedSQLs
	case MetricPlannedBounces:
		return r.PlannedBounces
	}
	return 0
}

var plannedCounterparts = map[Metric]Metric{
	MetricEmailsSent:      MetricPlannedSent,
	MetricReplies:         MetricPlannedReplies,
	MetricPositiveReplies: MetricPlannedMQLs,
	MetricMeetingsBooked:  MetricPlannedSQLs,
	MetricBounces:         MetricPlannedBounces,
}

// PlannedCounterpart maps an actual metric to the planned series plotted
// next to it on comparison charts. The second return is false for metrics
// that have no planned pairing (pipeline value, planned metrics themselves).
func PlannedCounterpart(m Metric) (Metric, bool) {
	planned, ok := plannedCounterparts[m]
	return planned, ok
}

// Dimension identifies one of the six categorical segment fields.
type Dimension string

const (
	DimensionRegion        Dimension = "region"
	DimensionPersona       Dimension = "persona"
	DimensionInboxProvider Dimension = "inbox_provider"
	DimensionCampaign      Dimension = "campaign_name"
	DimensionTTLBucket     Dimension = "ttl_bucket"
	DimensionRevenueRange  Dimension = "revenue_range"
)

var allDimensions = []Dimension{
	DimensionRegion,
	DimensionPersona,
	DimensionInboxProvider,
	DimensionCampaign,
	DimensionTTLBucket,
	DimensionRevenueRange,
}

// Dimensions lists every categorical field records can be grouped by.
func Dimensions() []Dimension {
	out := make([]Dimension, len(allDimensions))
	copy(out, allDimensions)
	return out
}

// ParseDimension resolves a wire/config value into a recognized Dimension.
func ParseDimension(value string) (Dimension, bool) {
	switch Dimension(value) {
	case DimensionRegion, DimensionPersona, DimensionInboxProvider,
		DimensionCampaign, DimensionTTLBucket, DimensionRevenueRange:
		return Dimension(value), true
	}
	return "", false
}

var dimensionLabels = map[Dimension]string{
	DimensionRegion:        "Region",
	DimensionPersona:       "Persona",
	DimensionInboxProvider: "Inbox Provider",
	DimensionCampaign:      "Campaign",
	DimensionTTLBucket:     "Response Time",
	DimensionRevenueRange:  "Revenue Range",
}

// Label returns the default display label for the dimension.
func (d Dimension) Label() string {
	if label, ok := dimensionLabels[d]; ok {
		return label
	}
	return string(d)
}

// Value extracts the dimension value from a record.
func (d Dimension) Value(r Record) string {
	switch d {
	case DimensionRegion:
		return r.Region
	case DimensionPersona:
		return r.Persona
	case DimensionInboxProvider:
		return r.InboxProvider
	case DimensionCampaign:
		return r.CampaignName
	case DimensionTTLBucket:
		return r.TTLBucket
	case DimensionRevenueRange:
		return r.RevenueRange
	}
	return ""
}
