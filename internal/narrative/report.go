package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"donationsrv/internal/analytics"
	"donationsrv/internal/domain"
)

const narrativeSystemPrompt = "You are a data analyst for a nonprofit organisation. Write concise, factual and encouraging summaries of donation performance for the leadership team."

// Narrative summarises an aggregation result. A result without donations
// yields a fixed message without calling the generator.
func (c *Composer) Narrative(ctx context.Context, res analytics.Result) Outcome {
	if res.Empty() {
		return Outcome{Text: NoDataMessage(res.Period), Source: domain.NarrativeEmpty}
	}
	return c.compose(ctx, KindNarrative, narrativeSystemPrompt, NarrativePrompt(res), func() string {
		return FallbackNarrative(res)
	})
}

// NoDataMessage is the narrative for a period without donations.
func NoDataMessage(p analytics.Period) string {
	return fmt.Sprintf("No donation data available between %s and %s.", p.From, p.To)
}

// NarrativePrompt builds the user prompt for a period narrative.
func NarrativePrompt(res analytics.Result) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Write a short narrative (3-4 sentences) about donation performance between %s and %s.\n\n", res.Period.From, res.Period.To)
	sb.WriteString("Data:\n")
	fmt.Fprintf(sb, "- Total donations: %d\n", res.TotalCount)
	fmt.Fprintf(sb, "- Total amount: %s\n", res.TotalAmount.String())
	if len(res.TopCauses) > 0 {
		sb.WriteString("- Top causes:\n")
		for _, c := range res.TopCauses {
			if c.Percentage == "" {
				fmt.Fprintf(sb, "  - %s: %s\n", c.Cause, c.Amount.String())
				continue
			}
			fmt.Fprintf(sb, "  - %s: %s%% (%s)\n", c.Cause, c.Percentage, c.Amount.String())
		}
	}
	if len(res.TopCities) > 0 {
		sb.WriteString("- Top cities:\n")
		for _, c := range res.TopCities {
			fmt.Fprintf(sb, "  - %s: %s\n", c.City, c.Amount.String())
		}
	}
	if res.HasGrowth() {
		fmt.Fprintf(sb, "- Month-over-month growth: %s%% (%s to %s)\n", res.MoMGrowth, res.PrevMonth, res.LastMonth)
	}
	sb.WriteString("\nRequirements:\n")
	sb.WriteString("- Mention the leading causes and their share of donations\n")
	sb.WriteString("- Mention the city with the highest contribution\n")
	if res.HasGrowth() {
		sb.WriteString("- Describe the month-over-month trend\n")
	}
	sb.WriteString("- Plain text only, no markdown, no headings\n")
	return sb.String()
}

// FallbackNarrative builds a narrative from res alone.
func FallbackNarrative(res analytics.Result) string {
	var sentences []string

	if sentence, ok := causeShareSentence(res.TopCauses); ok {
		sentences = append(sentences, sentence)
	} else {
		sentences = append(sentences, fmt.Sprintf("%d donations totalling $%s were received between %s and %s.",
			res.TotalCount, formatAmount(res.TotalAmount), res.Period.From, res.Period.To))
	}

	if len(res.TopCities) > 0 {
		top := res.TopCities[0]
		sentences = append(sentences, fmt.Sprintf("%s donors contributed the highest ($%s).", top.City, formatAmount(top.Amount)))
	}

	if res.HasGrowth() {
		sign := ""
		if g, err := decimal.NewFromString(res.MoMGrowth); err == nil && g.IsPositive() {
			sign = "+"
		}
		sentences = append(sentences, fmt.Sprintf("Overall donations showed %s%s%% month-over-month growth.", sign, res.MoMGrowth))
	}

	return strings.Join(sentences, " ")
}

// causeShareSentence names the two leading causes and their combined share.
// It reports false when there are no causes or a leading share is undefined.
func causeShareSentence(causes []analytics.CauseShare) (string, bool) {
	if len(causes) == 0 {
		return "", false
	}
	leaders := causes
	if len(leaders) > 2 {
		leaders = leaders[:2]
	}
	names := make([]string, 0, len(leaders))
	share := decimal.Zero
	for _, c := range leaders {
		pct, err := decimal.NewFromString(c.Percentage)
		if err != nil {
			return "", false
		}
		names = append(names, c.Cause)
		share = share.Add(pct)
	}
	return fmt.Sprintf("%s campaigns accounted for %s%% of donations.",
		strings.Join(names, " and "), share.Round(0).String()), true
}
