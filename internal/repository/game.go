// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/mynextgame/internal/models"
)

// ListGames returns all entries owned by the given user, newest first.
func (r *Repository) ListGames(ctx context.Context, ownerID int64) ([]models.Game, error) {
	games := []models.Game{}
	err := r.db.SelectContext(ctx, &games,
		`SELECT * FROM games WHERE user_id = ? ORDER BY added_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, wrapError(err)
	}
	return games, nil
}

// GetGame retrieves a single entry if it exists and is owned by ownerID.
func (r *Repository) GetGame(ctx context.Context, ownerID, id int64) (*models.Game, error) {
	var game models.Game
	err := r.db.GetContext(ctx, &game,
		`SELECT * FROM games WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &game, nil
}

// CreateGame inserts a new entry and fills in its ID and creation time.
// Caller is responsible for setting UserID to the authenticated identity.
func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	if game.AddedAt.IsZero() {
		game.AddedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO games (user_id, added_at, name, cover, rawg_id, platform, status,
		                    rating, hours_played, review, priority, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.UserID, game.AddedAt, game.Name, game.Cover, game.RawgID, game.Platform,
		game.Status, game.Rating, game.HoursPlayed, game.Review, game.Priority,
		game.StartDate, game.EndDate)
	if err != nil {
		return wrapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	game.ID = id
	return nil
}

// UpdateGame overwrites the editorial fields of an entry. The owner and the
// creation timestamp are never touched. Returns ErrNotFound when no entry
// with that id is owned by ownerID, whether it is absent or owned by someone
// else.
func (r *Repository) UpdateGame(ctx context.Context, ownerID, id int64, game *models.Game) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET name = ?, cover = ?, rawg_id = ?, platform = ?, status = ?,
		                  rating = ?, hours_played = ?, review = ?, priority = ?,
		                  start_date = ?, end_date = ?
		 WHERE id = ? AND user_id = ?`,
		game.Name, game.Cover, game.RawgID, game.Platform, game.Status,
		game.Rating, game.HoursPlayed, game.Review, game.Priority,
		game.StartDate, game.EndDate, id, ownerID)
	if err != nil {
		return wrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGame removes an entry under the same ownership precondition as UpdateGame.
func (r *Repository) DeleteGame(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM games WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return wrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileStats aggregates a user's list for the public profile view.
func (r *Repository) ProfileStats(ctx context.Context, userID int64) (*models.ProfileStats, error) {
	games, err := r.ListGames(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.ProfileStats{
		ByStatus:   map[string]int{},
		ByPlatform: map[string]int{},
	}
	for i := range games {
		g := &games[i]
		stats.TotalGames++
		stats.TotalHours += g.HoursPlayed
		switch g.Status {
		case models.StatusCompleted:
			stats.TotalCompleted++
		case models.StatusPlatinumed:
			stats.TotalPlatinated++
		}
		if g.Status != "" {
			stats.ByStatus[g.Status]++
		}
		if g.Platform != "" {
			stats.ByPlatform[g.Platform]++
		}
	}
	return stats, nil
}
