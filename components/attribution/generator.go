package attribution

import (
	"math"
	"math/rand"
	"time"
)

// Entropy is the random source threaded through dataset generation. It is
// satisfied by *math/rand.Rand; tests inject fixed sources for reproducible
// datasets.
type Entropy interface {
	Float64() float64
	Intn(n int) int
}

// GeneratorOptions configures synthetic dataset generation. The zero value
// yields the production defaults: a 121-day window ending today (UTC) with a
// time-seeded random source.
type GeneratorOptions struct {
	// Anchor is the last (most recent) day of the window.
	Anchor time.Time
	// WindowDays is the total number of days generated, anchor inclusive.
	WindowDays int
	Entropy    Entropy
}

func (opts GeneratorOptions) normalized() GeneratorOptions {
	if opts.Anchor.IsZero() {
		opts.Anchor = time.Now().UTC()
	}
	opts.Anchor = opts.Anchor.UTC().Truncate(24 * time.Hour)
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultWindowDays
	}
	if opts.Entropy == nil {
		opts.Entropy = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return opts
}

// GenerateDataset synthesizes per-segment-per-day outreach records over the
// configured trailing window. Output is ordered ascending by day; order of
// rows within a day carries no meaning. The function is total: every input
// produces a valid dataset.
func GenerateDataset(opts GeneratorOptions) []Record {
	opts = opts.normalized()

	records := make([]Record, 0, opts.WindowDays*weekdaySegmentRows)
	for i := opts.WindowDays - 1; i >= 0; i-- {
		day := opts.Anchor.AddDate(0, 0, -i)
		rows := weekdaySegmentRows
		if isWeekend(day) {
			rows = weekendSegmentRows
		}
		for row := 0; row < rows; row++ {
			records = append(records, generateRecord(day, opts.Entropy))
		}
	}
	return records
}

func generateRecord(day time.Time, ent Entropy) Record {
	seasonality := SeasonalityMultiplier(day.Month())

	r := Record{
		Date:          day,
		DisplayDate:   day.Format("Jan 2"),
		Region:        sample(ent, regionDomain),
		Persona:       sample(ent, personaDomain),
		InboxProvider: sample(ent, inboxProviderDomain),
		CampaignName:  sample(ent, campaignDomain),
		TTLBucket:     sample(ent, ttlBucketDomain),
		RevenueRange:  sample(ent, revenueRangeDomain),
	}

	r.EmailsSent = floor(baseDailyVolume * seasonality * between(ent, volumeNoiseMin, volumeNoiseMax))
	r.PlannedSent = floor(baseDailyVolume * seasonality)

	r.Replies = floor(float64(r.EmailsSent) * between(ent, replyRateMin, replyRateMax))
	r.PlannedReplies = floor(float64(r.PlannedSent) * plannedReplyRate)

	r.PositiveReplies = floor(float64(r.Replies) * positiveReplyRate)
	r.PlannedMQLs = floor(float64(r.PlannedReplies) * positiveReplyRate)

	r.MeetingsBooked = floor(float64(r.PositiveReplies) * meetingRate)
	r.PlannedSQLs = floor(float64(r.PlannedMQLs) * meetingRate)

	bounceRate := bounceRateDefault
	if r.InboxProvider == highBounceInboxProvider {
		bounceRate = bounceRateHigh
	}
	r.Bounces = floor(float64(r.EmailsSent) * bounceRate)
	r.PlannedBounces = floor(float64(r.PlannedSent) * plannedBounceRate)

	perMeeting := meetingValueDefault
	if r.RevenueRange == topRevenueRange {
		perMeeting = meetingValueTop
	}
	r.PipelineValue = r.MeetingsBooked * perMeeting

	return r
}

func sample(ent Entropy, domain []string) string {
	return domain[ent.Intn(len(domain))]
}

func between(ent Entropy, lo, hi float64) float64 {
	return lo + ent.Float64()*(hi-lo)
}

func floor(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v))
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
