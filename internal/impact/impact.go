// Package impact turns a donation amount into a concrete statement of what it
// pays for.
package impact

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCause is used when a cause is missing or not in the table.
const DefaultCause = "Healthcare"

type descriptor struct {
	perUnit float64
	unit    string
}

var table = map[string]descriptor{
	"Healthcare":    {perUnit: 400, unit: "rural health checkups"},
	"Education":     {perUnit: 500, unit: "student scholarships"},
	"Environment":   {perUnit: 100, unit: "trees planted"},
	"Hunger Relief": {perUnit: 50, unit: "meals provided"},
	"Hunger":        {perUnit: 50, unit: "meals provided"},
}

// Compute describes the impact of amount for the given cause, e.g.
// "fund 3+ student scholarships this month". At least one unit is always
// claimed.
func Compute(amount float64, cause string) string {
	d := lookup(cause)
	units := math.Floor(amount / d.perUnit)
	if math.IsNaN(units) || math.IsInf(units, 0) || units < 1 {
		units = 1
	}
	return fmt.Sprintf("fund %.0f+ %s this month", units, d.unit)
}

// Known reports whether cause has its own entry in the impact table.
func Known(cause string) bool {
	_, ok := find(cause)
	return ok
}

func lookup(cause string) descriptor {
	if d, ok := find(cause); ok {
		return d
	}
	return table[DefaultCause]
}

func find(cause string) (descriptor, bool) {
	if d, ok := table[cause]; ok {
		return d, true
	}
	trimmed := strings.TrimSpace(cause)
	if trimmed == "" {
		return descriptor{}, false
	}
	d, ok := table[cases.Title(language.English).String(trimmed)]
	return d, ok
}
