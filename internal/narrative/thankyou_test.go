package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"donationsrv/internal/domain"
)

func sampleDonation() domain.Donation {
	return domain.Donation{
		ID:           "d-1",
		Amount:       decimal.NewNullDecimal(decimal.NewFromInt(1600)),
		CurrencyCode: "INR",
		Campaign:     "Bright Futures",
		Cause:        "Education",
	}
}

func TestThankYouFallbackShape(t *testing.T) {
	donor := domain.Donor{Name: "Asha Rao"}
	c := NewComposer(&recordingGenerator{err: errors.New("unavailable")}, Options{})

	out := c.ThankYou(context.Background(), sampleDonation(), donor)
	if out.Source != domain.NarrativeFallback {
		t.Fatalf("Source = %q, want fallback", out.Source)
	}
	want := "Dear Asha Rao,\n\n" +
		"Thank you for your generous donation to our Bright Futures campaign. Your 1600 INR donation will help fund 3+ student scholarships this month.\n\n" +
		"Your generosity makes a real difference in the lives of those we serve. Together, we're creating lasting positive change in Education.\n\n" +
		"Warm regards."
	if out.Text != want {
		t.Fatalf("Text = %q\nwant %q", out.Text, want)
	}
}

func TestFallbackThankYouAlwaysFramed(t *testing.T) {
	donors := []domain.Donor{
		{Name: "Ravi", IsRecurringDonor: true},
		{Name: "Meera K", IsRecurringDonor: false},
	}
	donations := []domain.Donation{
		sampleDonation(),
		{},
		{Amount: decimal.NewNullDecimal(decimal.RequireFromString("12.5")), Cause: "Space"},
	}
	for _, donor := range donors {
		for _, donation := range donations {
			msg := FallbackThankYou(donation, donor)
			if !strings.HasPrefix(msg, "Dear "+donor.Name+",") {
				t.Fatalf("message does not start with salutation: %q", msg)
			}
			lines := strings.Split(msg, "\n")
			if lines[len(lines)-1] != ClosingLine {
				t.Fatalf("last line = %q, want %q", lines[len(lines)-1], ClosingLine)
			}
		}
	}
}

func TestFallbackThankYouDefaults(t *testing.T) {
	msg := FallbackThankYou(domain.Donation{}, domain.Donor{Name: "Ravi", IsRecurringDonor: true})
	for _, want := range []string{
		"Thank you for your continued support to our our recent initiative campaign.",
		"Your 0 donation will help fund 1+ rural health checkups this month.",
		"positive change in our community programmes.",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestThankYouUsesGeneratedText(t *testing.T) {
	gen := &recordingGenerator{text: "Dear Asha Rao,\n\nThanks!\n\nWarm regards."}
	c := NewComposer(gen, Options{})
	out := c.ThankYou(context.Background(), sampleDonation(), domain.Donor{Name: "Asha Rao", IsRecurringDonor: true})
	if out.Text != gen.text || out.Source != domain.NarrativeGenerated {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if gen.system != thankYouSystemPrompt {
		t.Fatalf("system prompt = %q", gen.system)
	}
	for _, want := range []string{
		`Start with "Dear Asha Rao,"`,
		"Thank them for their continued support",
		"- Campaign: Bright Futures",
		"- Estimated Impact: fund 3+ student scholarships this month",
		"- Is Recurring Donor: Yes",
		"Maximum 150 words",
		`"Warm regards."`,
	} {
		if !strings.Contains(gen.user, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.user)
		}
	}
}

func TestThankYouPromptMatchesComposer(t *testing.T) {
	gen := &recordingGenerator{text: "ok"}
	donor := domain.Donor{Name: "Meera"}
	NewComposer(gen, Options{}).ThankYou(context.Background(), sampleDonation(), donor)
	if gen.user != ThankYouPrompt(sampleDonation(), donor) {
		t.Fatal("ThankYouPrompt differs from the prompt sent to the generator")
	}
}
