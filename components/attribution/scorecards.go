package attribution

// Scorecard is one KPI card: the windowed total of an actual metric next to
// its planned counterpart, with a relative trend.
type Scorecard struct {
	Metric  Metric  `json:"metric"`
	Label   string  `json:"label"`
	Actual  int     `json:"actual"`
	Planned int     `json:"planned"`
	// Trend is (actual - planned) / planned; 0 when nothing was planned.
	Trend float64 `json:"trend"`
}

// BuildScorecards derives the five KPI cards from grand totals. Every card,
// bounces included, computes its trend from actual vs planned.
func BuildScorecards(totals FunnelTotals) []Scorecard {
	cards := make([]Scorecard, 0, len(SelectableMetrics()))
	for _, metric := range SelectableMetrics() {
		planned, _ := PlannedCounterpart(metric)
		card := Scorecard{
			Metric:  metric,
			Label:   metric.Label(),
			Actual:  totals.Value(metric),
			Planned: totals.Value(planned),
		}
		if card.Planned != 0 {
			card.Trend = float64(card.Actual-card.Planned) / float64(card.Planned)
		}
		cards = append(cards, card)
	}
	return cards
}
