// Package service coordinates repositories, composers and event publishing
// for donations and analytics.
package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"donationsrv/internal/adapter/events"
	"donationsrv/internal/domain"
	"donationsrv/internal/infra/geoip"
	"donationsrv/internal/narrative"
)

// Deps are the collaborators of Donations. Events and Cities are optional.
type Deps struct {
	Donations domain.DonationRepository
	Donors    domain.DonorRepository
	Analytics domain.AnalyticsRepository
	Composer  *narrative.Composer
	Events    events.Publisher
	Cities    geoip.CityResolver
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Donations implements the donation and analytics use cases.
type Donations struct {
	donations domain.DonationRepository
	donors    domain.DonorRepository
	analytics domain.AnalyticsRepository
	composer  *narrative.Composer
	events    events.Publisher
	cities    geoip.CityResolver
	logger    zerolog.Logger
	now       func() time.Time
}

func New(d Deps) *Donations {
	s := &Donations{
		donations: d.Donations,
		donors:    d.Donors,
		analytics: d.Analytics,
		composer:  d.Composer,
		events:    d.Events,
		cities:    d.Cities,
		logger:    d.Logger,
		now:       d.Now,
	}
	if s.composer == nil {
		s.composer = narrative.NewComposer(nil, narrative.Options{})
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// validID rejects identifiers the database could not parse as uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
