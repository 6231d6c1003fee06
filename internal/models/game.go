// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// Game status values as presented by the client. The closed set is not
// enforced at the data-access boundary.
const (
	StatusPlanToPlay = "Plan-to-play"
	StatusPlaying    = "Playing"
	StatusOnHold     = "On-hold"
	StatusCompleted  = "Completed"
	StatusPlatinumed = "Platinumed"
	StatusDropped    = "Dropped"
)

// Game priority values.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Game is one user's relationship to a game. UserID and AddedAt are stamped
// by the server on creation and never change afterwards.
type Game struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	AddedAt     time.Time `db:"added_at" json:"addedAt"`
	Name        string    `db:"name" json:"name"`
	Cover       string    `db:"cover" json:"cover"`
	RawgID      *int64    `db:"rawg_id" json:"rawgId,omitempty"`
	Platform    string    `db:"platform" json:"platform"`
	Status      string    `db:"status" json:"status"`
	Rating      int       `db:"rating" json:"rating"`
	HoursPlayed int       `db:"hours_played" json:"hoursPlayed"`
	Review      string    `db:"review" json:"review"`
	Priority    string    `db:"priority" json:"priority"`
	StartDate   *string   `db:"start_date" json:"startDate,omitempty"`
	EndDate     *string   `db:"end_date" json:"endDate,omitempty"`
}

// ProfileStats is the public aggregate view of a user's game list.
type ProfileStats struct {
	TotalGames      int            `json:"totalGames"`
	TotalHours      int            `json:"totalHours"`
	TotalCompleted  int            `json:"totalCompleted"`
	TotalPlatinated int            `json:"totalPlatinated"`
	ByStatus        map[string]int `json:"gamesByStatus"`
	ByPlatform      map[string]int `json:"gamesByPlatform"`
}
