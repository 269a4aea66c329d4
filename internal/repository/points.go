package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/enzo405/Thanks/internal/model"
)

// PointsRepository abstracts persistence of per-(guild, user) points records.
// Updates are last-write-wins; serialization of concurrent read-modify-write
// cycles is the caller's concern.
type PointsRepository interface {
	Get(ctx context.Context, guildID, userID int64) (*model.PointsRecord, error)
	Create(ctx context.Context, rec *model.PointsRecord) error
	Update(ctx context.Context, rec *model.PointsRecord) error
	Top(ctx context.Context, guildID int64, limit int) ([]*model.PointsRecord, error)
	Rank(ctx context.Context, guildID, userID int64) (int, error)
	DeleteGuild(ctx context.Context, guildID int64) error
}

// PostgresPointsRepository stores points records in Postgres.
type PostgresPointsRepository struct {
	db *sql.DB
}

func NewPostgresPointsRepository(db *sql.DB) (*PostgresPointsRepository, error) {
	r := &PostgresPointsRepository{db: db}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresPointsRepository) init() error {
	_, err := r.db.Exec(`
        CREATE TABLE IF NOT EXISTS points (
            guild_id BIGINT NOT NULL,
            discord_user_id BIGINT NOT NULL,
            points BIGINT NOT NULL DEFAULT 0,
            num_of_thanks BIGINT NOT NULL DEFAULT 0,
            last_thanks TIMESTAMPTZ,
            last_received_points_date TIMESTAMPTZ,
            current_day_received_points INTEGER NOT NULL DEFAULT 0,
            PRIMARY KEY (guild_id, discord_user_id)
        )`)
	return err
}

const pointsColumns = `guild_id, discord_user_id, points, num_of_thanks, last_thanks, last_received_points_date, current_day_received_points`

func scanPointsRecord(row interface{ Scan(...any) error }) (*model.PointsRecord, error) {
	var rec model.PointsRecord
	var lastThanks, lastReceived sql.NullTime
	if err := row.Scan(&rec.GuildID, &rec.UserID, &rec.Points, &rec.NumOfThanks,
		&lastThanks, &lastReceived, &rec.CurrentDayReceivedPoints); err != nil {
		return nil, err
	}
	if lastThanks.Valid {
		t := lastThanks.Time
		rec.LastThanks = &t
	}
	if lastReceived.Valid {
		t := lastReceived.Time
		rec.LastReceivedPointsDate = &t
	}
	return &rec, nil
}

func (r *PostgresPointsRepository) Get(ctx context.Context, guildID, userID int64) (*model.PointsRecord, error) {
	var rec *model.PointsRecord
	err := withRetry(ctx, func() error {
		row := r.db.QueryRowContext(ctx,
			`SELECT `+pointsColumns+` FROM points WHERE guild_id=$1 AND discord_user_id=$2`,
			guildID, userID)
		var err error
		rec, err = scanPointsRecord(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *PostgresPointsRepository) Create(ctx context.Context, rec *model.PointsRecord) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO points (`+pointsColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			rec.GuildID, rec.UserID, rec.Points, rec.NumOfThanks,
			nullTime(rec.LastThanks), nullTime(rec.LastReceivedPointsDate),
			rec.CurrentDayReceivedPoints)
		return err
	})
}

func (r *PostgresPointsRepository) Update(ctx context.Context, rec *model.PointsRecord) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
            UPDATE points SET
                points=$3,
                num_of_thanks=$4,
                last_thanks=$5,
                last_received_points_date=$6,
                current_day_received_points=$7
            WHERE guild_id=$1 AND discord_user_id=$2`,
			rec.GuildID, rec.UserID, rec.Points, rec.NumOfThanks,
			nullTime(rec.LastThanks), nullTime(rec.LastReceivedPointsDate),
			rec.CurrentDayReceivedPoints)
		return err
	})
}

// Top returns the guild's records ordered by points descending.
func (r *PostgresPointsRepository) Top(ctx context.Context, guildID int64, limit int) ([]*model.PointsRecord, error) {
	var out []*model.PointsRecord
	err := withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT `+pointsColumns+` FROM points WHERE guild_id=$1 ORDER BY points DESC LIMIT $2`,
			guildID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			rec, err := scanPointsRecord(rows)
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	return out, err
}

// Rank returns the user's 1-based position in the guild ordered by points.
func (r *PostgresPointsRepository) Rank(ctx context.Context, guildID, userID int64) (int, error) {
	var rank int
	err := withRetry(ctx, func() error {
		row := r.db.QueryRowContext(ctx, `
            SELECT 1 + COUNT(*) FROM points
            WHERE guild_id=$1 AND points > (
                SELECT points FROM points WHERE guild_id=$1 AND discord_user_id=$2
            )`, guildID, userID)
		return row.Scan(&rank)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err == nil && rank == 1 {
		// COUNT over an empty subquery result still yields a row; make
		// sure the user actually has a record before reporting first place.
		if _, err := r.Get(ctx, guildID, userID); err != nil {
			return 0, err
		}
	}
	return rank, err
}

func (r *PostgresPointsRepository) DeleteGuild(ctx context.Context, guildID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM points WHERE guild_id=$1`, guildID)
		return err
	})
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
