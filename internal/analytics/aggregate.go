// Package analytics computes per-period donation statistics.
package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"donationsrv/internal/domain"
)

const topN = 3

var hundred = decimal.NewFromInt(100)

// CauseShare is a cause ranked by amount with its share of the period total.
// Percentage is empty when the period total is zero.
type CauseShare struct {
	Cause      string          `json:"cause"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage string          `json:"percentage,omitempty"`
}

// CityTotal is a city ranked by donated amount.
type CityTotal struct {
	City   string          `json:"city"`
	Amount decimal.Decimal `json:"amount"`
}

// CampaignTotal is a campaign ranked by donated amount.
type CampaignTotal struct {
	Campaign string          `json:"campaign"`
	Amount   decimal.Decimal `json:"amount"`
}

// Result holds the statistics for one period. MoMGrowth, LastMonth and
// PrevMonth are empty when undefined.
type Result struct {
	Period       Period          `json:"period"`
	TotalCount   int             `json:"totalCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TopCauses    []CauseShare    `json:"topCauses"`
	TopCities    []CityTotal     `json:"topCities"`
	TopCampaigns []CampaignTotal `json:"topCampaigns"`
	MoMGrowth    string          `json:"momGrowth,omitempty"`
	LastMonth    string          `json:"lastMonth,omitempty"`
	PrevMonth    string          `json:"prevMonth,omitempty"`
}

// HasGrowth reports whether month-over-month growth is defined.
func (r Result) HasGrowth() bool {
	return r.MoMGrowth != ""
}

// Empty reports whether the period contained no donations.
func (r Result) Empty() bool {
	return r.TotalCount == 0
}

// Aggregate summarises records for period. Ties in the rankings keep the
// order in which their keys first appear in records.
func Aggregate(records []domain.Donation, period Period) Result {
	res := Result{
		Period:       period,
		TotalAmount:  decimal.Zero,
		TopCauses:    []CauseShare{},
		TopCities:    []CityTotal{},
		TopCampaigns: []CampaignTotal{},
	}
	if len(records) == 0 {
		return res
	}

	byCampaign := newGroupSum()
	byCause := newGroupSum()
	byCity := newGroupSum()
	byMonth := newGroupSum()

	total := decimal.Zero
	for _, rec := range records {
		amount := rec.AmountValue()
		total = total.Add(amount)
		byCampaign.add(rec.Campaign, amount)
		byCause.add(rec.Cause, amount)
		byCity.add(rec.City, amount)
		if !rec.DonationDate.IsZero() {
			byMonth.add(monthKey(rec), amount)
		}
	}
	res.TotalCount = len(records)
	res.TotalAmount = total

	for _, e := range byCause.ranked(topN) {
		res.TopCauses = append(res.TopCauses, CauseShare{
			Cause:      e.key,
			Amount:     e.amount,
			Percentage: percentage(e.amount, total),
		})
	}
	for _, e := range byCity.ranked(topN) {
		res.TopCities = append(res.TopCities, CityTotal{City: e.key, Amount: e.amount})
	}
	for _, e := range byCampaign.ranked(topN) {
		res.TopCampaigns = append(res.TopCampaigns, CampaignTotal{Campaign: e.key, Amount: e.amount})
	}

	res.LastMonth, res.PrevMonth, res.MoMGrowth = growth(byMonth)
	return res
}

func monthKey(rec domain.Donation) string {
	return rec.DonationDate.Format("2006-01")
}

// percentage is empty when total is zero; the share is undefined then.
func percentage(amount, total decimal.Decimal) string {
	if total.IsZero() {
		return ""
	}
	return amount.Mul(hundred).Div(total).StringFixed(1)
}

// growth compares the two chronologically last months present. Gaps between
// them are allowed.
func growth(months *groupSum) (last, prev, pct string) {
	if len(months.keys) < 2 {
		return "", "", ""
	}
	keys := slices.Clone(months.keys)
	slices.Sort(keys)
	last = keys[len(keys)-1]
	prev = keys[len(keys)-2]
	prevAmount := months.totals[prev]
	if prevAmount.IsZero() {
		return last, prev, ""
	}
	lastAmount := months.totals[last]
	pct = lastAmount.Sub(prevAmount).Mul(hundred).Div(prevAmount).StringFixed(1)
	return last, prev, pct
}

type groupEntry struct {
	key    string
	amount decimal.Decimal
}

// groupSum is a sum-by-key map that remembers first-encounter order.
type groupSum struct {
	keys   []string
	totals map[string]decimal.Decimal
}

func newGroupSum() *groupSum {
	return &groupSum{totals: make(map[string]decimal.Decimal)}
}

func (g *groupSum) add(key string, amount decimal.Decimal) {
	if key == "" {
		return
	}
	cur, ok := g.totals[key]
	if !ok {
		g.keys = append(g.keys, key)
		cur = decimal.Zero
	}
	g.totals[key] = cur.Add(amount)
}

func (g *groupSum) ranked(n int) []groupEntry {
	entries := make([]groupEntry, 0, len(g.keys))
	for _, k := range g.keys {
		entries = append(entries, groupEntry{key: k, amount: g.totals[k]})
	}
	slices.SortStableFunc(entries, func(a, b groupEntry) int {
		return b.amount.Cmp(a.amount)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
