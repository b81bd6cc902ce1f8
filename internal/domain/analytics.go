package domain

import (
	"encoding/json"
	"time"
)

// NarrativeSource records which path produced an analytics narrative or a
// thank-you message.
type NarrativeSource string

const (
	NarrativeGenerated NarrativeSource = "generated"
	NarrativeFallback  NarrativeSource = "fallback"
	NarrativeEmpty     NarrativeSource = "empty"
)

// Analytics stores one computed statistics snapshot for a period.
type Analytics struct {
	ID              string
	PeriodFrom      string
	PeriodTo        string
	Stats           json.RawMessage
	Narrative       string
	NarrativeSource NarrativeSource
	CreatedAt       time.Time
}
