package memory

import (
	"time"

	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
)

const (
	LeagueIDRecreationalBasketball = "rec-basketball-2026"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:             "rec-basketball-2026-regular",
			LeagueID:       LeagueIDRecreationalBasketball,
			Name:           "Recreational Basketball 2026",
			StartDate:      time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, time.June, 27, 0, 0, 0, 0, time.UTC),
			MaxGamesPerDay: 4,
			Cycles:         2,
			AutoRegenerate: true,
			State:          season.StateConfiguration,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "rec-hornets", LeagueID: LeagueIDRecreationalBasketball, Name: "Hornets", Active: true},
		{ID: "rec-wolves", LeagueID: LeagueIDRecreationalBasketball, Name: "Wolves", Active: true},
		{ID: "rec-titans", LeagueID: LeagueIDRecreationalBasketball, Name: "Titans", Active: true},
		{ID: "rec-comets", LeagueID: LeagueIDRecreationalBasketball, Name: "Comets", Active: true},
		{ID: "rec-rapids", LeagueID: LeagueIDRecreationalBasketball, Name: "Rapids", Active: true},
		{ID: "rec-owls", LeagueID: LeagueIDRecreationalBasketball, Name: "Owls", Active: true},
	}
}

func SeedVenues() []venue.Venue {
	return []venue.Venue{
		{ID: "rec-north-gym", LeagueID: LeagueIDRecreationalBasketball, Name: "North Gym", Active: true, DisplayOrder: 1},
		{ID: "rec-south-gym", LeagueID: LeagueIDRecreationalBasketball, Name: "South Gym", Active: true, DisplayOrder: 2},
	}
}

func SeedTimeSlots() []timeslot.TimeSlot {
	return []timeslot.TimeSlot{
		{ID: "rec-morning", LeagueID: LeagueIDRecreationalBasketball, Name: "Morning", StartTime: "09:00", EndTime: "10:30", Active: true, DisplayOrder: 1},
		{ID: "rec-noon", LeagueID: LeagueIDRecreationalBasketball, Name: "Noon", StartTime: "12:00", EndTime: "13:30", Active: true, DisplayOrder: 2},
	}
}
