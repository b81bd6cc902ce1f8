package domain

import "time"

// Donor is a person or organisation that gives to campaigns.
type Donor struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	IsRecurringDonor bool
	CreatedAt        time.Time
}
