package repository

import (
	"context"
	"database/sql"
)

// GuildRepository abstracts persistence of guild membership and the
// per-guild blacklisted channel lists.
type GuildRepository interface {
	EnsureGuild(ctx context.Context, guildID int64) error
	DeleteGuild(ctx context.Context, guildID int64) error
	ListGuildIDs(ctx context.Context) ([]int64, error)
	ListChannels(ctx context.Context, guildID int64) ([]int64, error)
	AddChannel(ctx context.Context, guildID, channelID int64) error
	RemoveChannel(ctx context.Context, guildID, channelID int64) error
}

// PostgresGuildRepository stores guilds and blacklisted channels in Postgres.
type PostgresGuildRepository struct {
	db *sql.DB
}

func NewPostgresGuildRepository(db *sql.DB) (*PostgresGuildRepository, error) {
	r := &PostgresGuildRepository{db: db}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresGuildRepository) init() error {
	_, err := r.db.Exec(`
        CREATE TABLE IF NOT EXISTS guilds (
            guild_id BIGINT PRIMARY KEY
        )`)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
        CREATE TABLE IF NOT EXISTS channels (
            channel_id BIGINT NOT NULL,
            guild_id BIGINT NOT NULL,
            PRIMARY KEY (channel_id, guild_id)
        )`)
	return err
}

func (r *PostgresGuildRepository) EnsureGuild(ctx context.Context, guildID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO guilds (guild_id) VALUES ($1) ON CONFLICT (guild_id) DO NOTHING`, guildID)
		return err
	})
}

// DeleteGuild removes the guild row together with its channel list.
func (r *PostgresGuildRepository) DeleteGuild(ctx context.Context, guildID int64) error {
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE guild_id=$1`, guildID); err != nil {
			return err
		}
		_, err := r.db.ExecContext(ctx, `DELETE FROM guilds WHERE guild_id=$1`, guildID)
		return err
	})
}

func (r *PostgresGuildRepository) ListGuildIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT guild_id FROM guilds`)
		if err != nil {
			return err
		}
		defer rows.Close()
		ids = ids[:0]
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	return ids, err
}

func (r *PostgresGuildRepository) ListChannels(ctx context.Context, guildID int64) ([]int64, error) {
	var ids []int64
	err := withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT channel_id FROM channels WHERE guild_id=$1`, guildID)
		if err != nil {
			return err
		}
		defer rows.Close()
		ids = ids[:0]
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	return ids, err
}

func (r *PostgresGuildRepository) AddChannel(ctx context.Context, guildID, channelID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO channels (channel_id, guild_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			channelID, guildID)
		return err
	})
}

func (r *PostgresGuildRepository) RemoveChannel(ctx context.Context, guildID, channelID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM channels WHERE channel_id=$1 AND guild_id=$2`, channelID, guildID)
		return err
	})
}
