package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/enzo405/Thanks/internal/repository"
)

type channelSets map[int64]map[int64]struct{}

// GuildConfigStore holds the per-guild blacklisted channel lists as an
// immutable snapshot. Refresh rebuilds the whole snapshot from the
// repository and swaps it atomically; there is no partial invalidation.
// Readers may observe a stale snapshot between a config change and the
// refresh completing.
type GuildConfigStore struct {
	repo     repository.GuildRepository
	snapshot atomic.Pointer[channelSets]
}

func NewGuildConfigStore(repo repository.GuildRepository) *GuildConfigStore {
	s := &GuildConfigStore{repo: repo}
	empty := channelSets{}
	s.snapshot.Store(&empty)
	return s
}

// Refresh rebuilds the channel lists for every known guild.
func (s *GuildConfigStore) Refresh(ctx context.Context) error {
	guildIDs, err := s.repo.ListGuildIDs(ctx)
	if err != nil {
		return fmt.Errorf("list guilds: %w", err)
	}
	next := make(channelSets, len(guildIDs))
	for _, guildID := range guildIDs {
		channels, err := s.repo.ListChannels(ctx, guildID)
		if err != nil {
			return fmt.Errorf("list channels for guild %d: %w", guildID, err)
		}
		set := make(map[int64]struct{}, len(channels))
		for _, id := range channels {
			set[id] = struct{}{}
		}
		next[guildID] = set
	}
	s.snapshot.Store(&next)
	return nil
}

// IsBlacklisted reports whether the detector is disabled in the channel.
func (s *GuildConfigStore) IsBlacklisted(guildID, channelID int64) bool {
	set, ok := (*s.snapshot.Load())[guildID]
	if !ok {
		return false
	}
	_, ok = set[channelID]
	return ok
}

// Known reports whether the guild appeared in the last refresh.
func (s *GuildConfigStore) Known(guildID int64) bool {
	_, ok := (*s.snapshot.Load())[guildID]
	return ok
}
