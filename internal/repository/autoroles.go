package repository

import (
	"context"
	"database/sql"

	"github.com/enzo405/Thanks/internal/model"
)

// AutoroleRepository abstracts persistence of autorole threshold rules.
type AutoroleRepository interface {
	ListByGuild(ctx context.Context, guildID int64) ([]model.AutoroleRule, error)
	Add(ctx context.Context, rule model.AutoroleRule) error
	RemoveRole(ctx context.Context, guildID, roleID int64) error
	DeleteGuild(ctx context.Context, guildID int64) error
}

// PostgresAutoroleRepository stores autorole rules in Postgres.
type PostgresAutoroleRepository struct {
	db *sql.DB
}

func NewPostgresAutoroleRepository(db *sql.DB) (*PostgresAutoroleRepository, error) {
	r := &PostgresAutoroleRepository{db: db}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresAutoroleRepository) init() error {
	_, err := r.db.Exec(`
        CREATE TABLE IF NOT EXISTS autoroles (
            guild_id BIGINT NOT NULL,
            role_id BIGINT NOT NULL,
            threshold BIGINT NOT NULL,
            UNIQUE (guild_id, role_id, threshold)
        )`)
	return err
}

func (r *PostgresAutoroleRepository) ListByGuild(ctx context.Context, guildID int64) ([]model.AutoroleRule, error) {
	var rules []model.AutoroleRule
	err := withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT guild_id, role_id, threshold FROM autoroles WHERE guild_id=$1`, guildID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rules = rules[:0]
		for rows.Next() {
			var rule model.AutoroleRule
			if err := rows.Scan(&rule.GuildID, &rule.RoleID, &rule.Threshold); err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		return rows.Err()
	})
	return rules, err
}

func (r *PostgresAutoroleRepository) Add(ctx context.Context, rule model.AutoroleRule) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO autoroles (guild_id, role_id, threshold) VALUES ($1,$2,$3) ON CONFLICT DO NOTHING`,
			rule.GuildID, rule.RoleID, rule.Threshold)
		return err
	})
}

// RemoveRole deletes every rule configured for the role in the guild.
func (r *PostgresAutoroleRepository) RemoveRole(ctx context.Context, guildID, roleID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM autoroles WHERE guild_id=$1 AND role_id=$2`, guildID, roleID)
		return err
	})
}

func (r *PostgresAutoroleRepository) DeleteGuild(ctx context.Context, guildID int64) error {
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM autoroles WHERE guild_id=$1`, guildID)
		return err
	})
}
