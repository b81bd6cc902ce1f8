package narrative

import (
	"context"
	"fmt"
	"strings"

	"donationsrv/internal/domain"
	"donationsrv/internal/impact"
)

const (
	thankYouSystemPrompt = "You are an expert fundraising copywriter specializing in nonprofit campaigns. Create warm, donor-focused messages that inspire continued support."

	// ClosingLine ends every thank-you message.
	ClosingLine = "Warm regards."

	defaultCampaign = "our recent initiative"
	defaultCause    = "our community programmes"
)

type thankYouFacts struct {
	donorName string
	amount    string
	campaign  string
	cause     string
	impact    string
	thanks    string
	recurring bool
}

func factsFor(donation domain.Donation, donor domain.Donor) thankYouFacts {
	amount := donation.AmountValue()
	campaign := coalesce(donation.Campaign, defaultCampaign)
	cause := coalesce(donation.Cause, defaultCause)
	thanks := "generous donation"
	if donor.IsRecurringDonor {
		thanks = "continued support"
	}
	return thankYouFacts{
		donorName: donor.Name,
		amount:    strings.TrimSpace(amount.String() + " " + donation.CurrencyCode),
		campaign:  campaign,
		cause:     cause,
		impact:    impact.Compute(amount.InexactFloat64(), cause),
		thanks:    thanks,
		recurring: donor.IsRecurringDonor,
	}
}

// ThankYou writes a thank-you message for donation on behalf of donor.
func (c *Composer) ThankYou(ctx context.Context, donation domain.Donation, donor domain.Donor) Outcome {
	f := factsFor(donation, donor)
	return c.compose(ctx, KindThankYou, thankYouSystemPrompt, f.prompt(), f.fallback)
}

// ThankYouPrompt builds the user prompt for a thank-you message.
func ThankYouPrompt(donation domain.Donation, donor domain.Donor) string {
	return factsFor(donation, donor).prompt()
}

// FallbackThankYou builds a thank-you message without the generator. It
// starts with the salutation and ends with ClosingLine.
func FallbackThankYou(donation domain.Donation, donor domain.Donor) string {
	return factsFor(donation, donor).fallback()
}

func (f thankYouFacts) prompt() string {
	recurring := "No"
	if f.recurring {
		recurring = "Yes"
	}
	sb := &strings.Builder{}
	sb.WriteString("Generate a warm, personalized thank you message for a donor with the following details:\n")
	fmt.Fprintf(sb, "- Donor Name: %s\n", f.donorName)
	fmt.Fprintf(sb, "- Donation Amount: %s\n", f.amount)
	fmt.Fprintf(sb, "- Campaign: %s\n", f.campaign)
	fmt.Fprintf(sb, "- Cause: %s\n", f.cause)
	fmt.Fprintf(sb, "- Estimated Impact: %s\n", f.impact)
	fmt.Fprintf(sb, "- Is Recurring Donor: %s\n\n", recurring)
	sb.WriteString("Requirements:\n")
	fmt.Fprintf(sb, "- Start with \"Dear %s,\"\n", f.donorName)
	fmt.Fprintf(sb, "- Thank them for their %s\n", f.thanks)
	sb.WriteString("- Mention the specific campaign and cause\n")
	sb.WriteString("- Include the concrete impact their donation will have (use the estimated impact)\n")
	sb.WriteString("- Keep it warm, professional, and sincere\n")
	sb.WriteString("- Maximum 150 words\n")
	fmt.Fprintf(sb, "- End the message with exactly this closing on its own line: %q\n", ClosingLine)
	fmt.Fprintf(sb, "- Do NOT add any organization or person name after %q\n\n", ClosingLine)
	sb.WriteString("Generate only the message text, no additional formatting or explanations.")
	return sb.String()
}

func (f thankYouFacts) fallback() string {
	lines := []string{
		fmt.Sprintf("Dear %s,", f.donorName),
		"",
		fmt.Sprintf("Thank you for your %s to our %s campaign. Your %s donation will help %s.", f.thanks, f.campaign, f.amount, f.impact),
		"",
		fmt.Sprintf("Your generosity makes a real difference in the lives of those we serve. Together, we're creating lasting positive change in %s.", f.cause),
		"",
		ClosingLine,
	}
	return strings.Join(lines, "\n")
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
