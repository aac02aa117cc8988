package attribution

import "time"

// Categorical domains are compile-time constants: the generator samples from
// them and breakdowns treat them as closed sets.
var (
	regionDomain = []string{"North America", "EMEA", "APAC"}

	personaDomain = []string{"Founder", "VP Sales", "Head of Growth"}

	inboxProviderDomain = []string{"Google Workspace", "Microsoft 365", "Zoho Mail", "SMTP Relay"}

	campaignDomain = []string{"Cold Intro Q3", "Webinar Follow-up", "Pricing Update", "Re-engage Dormant"}

	ttlBucketDomain = []string{"< 1h", "1-4h", "4-24h", "1-3d", "3d+"}

	revenueRangeDomain = []string{"<$1M", "$1M-$10M", "$10M-$50M", "$50M+"}
)

const (
	// highBounceInboxProvider is the provider whose segments bounce at the
	// elevated rate.
	highBounceInboxProvider = "SMTP Relay"
	// topRevenueRange is the bracket that values meetings at the premium rate.
	topRevenueRange = "$50M+"
)

// Funnel conversion rates and volume constants. Downstream metrics are
// bounded by upstream × rate with every rate in [0,1], so derived counts
// can never exceed their parent or go negative.
const (
	baseDailyVolume = 250

	volumeNoiseMin = 0.85
	volumeNoiseMax = 1.15

	replyRateMin     = 0.018
	replyRateMax     = 0.025
	plannedReplyRate = 0.02

	positiveReplyRate = 0.35
	meetingRate       = 0.60

	bounceRateDefault = 0.012
	bounceRateHigh    = 0.03
	plannedBounceRate = 0.015

	meetingValueDefault = 15000
	meetingValueTop     = 50000
)

const (
	// defaultWindowDays covers the anchor day plus the 120 days before it.
	defaultWindowDays = 121

	weekdaySegmentRows = 12
	weekendSegmentRows = 2
)

// seasonalityByMonth is the fixed 12-entry volume table. July and August
// carry the summer-slump collapse.
var seasonalityByMonth = [13]float64{
	time.January:   1.0,
	time.February:  1.0,
	time.March:     1.0,
	time.April:     1.0,
	time.May:       1.0,
	time.June:      1.0,
	time.July:      0.2,
	time.August:    0.2,
	time.September: 1.0,
	time.October:   1.0,
	time.November:  1.0,
	time.December:  1.0,
}

// SeasonalityMultiplier returns the volume multiplier for the given month.
func SeasonalityMultiplier(month time.Month) float64 {
	if month < time.January || month > time.December {
		return 1.0
	}
	return seasonalityByMonth[month]
}

// RegionDomain returns a copy of the region domain.
func RegionDomain() []string { return cloneStrings(regionDomain) }

// PersonaDomain returns a copy of the persona domain.
func PersonaDomain() []string { return cloneStrings(personaDomain) }

// InboxProviderDomain returns a copy of the inbox provider domain.
func InboxProviderDomain() []string { return cloneStrings(inboxProviderDomain) }

// CampaignDomain returns a copy of the campaign domain.
func CampaignDomain() []string { return cloneStrings(campaignDomain) }

// TTLBucketDomain returns a copy of the response-time bucket domain.
func TTLBucketDomain() []string { return cloneStrings(ttlBucketDomain) }

// RevenueRangeDomain returns a copy of the revenue range domain.
func RevenueRangeDomain() []string { return cloneStrings(revenueRangeDomain) }

// DomainFor returns a copy of the domain backing the given dimension.
func DomainFor(d Dimension) []string {
	switch d {
	case DimensionRegion:
		return RegionDomain()
	case DimensionPersona:
		return PersonaDomain()
	case DimensionInboxProvider:
		return InboxProviderDomain()
	case DimensionCampaign:
		return CampaignDomain()
	case DimensionTTLBucket:
		return TTLBucketDomain()
	case DimensionRevenueRange:
		return RevenueRangeDomain()
	}
	return nil
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
