package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/enzo405/Thanks/internal/model"
	"github.com/enzo405/Thanks/internal/repository"
)

// DailyCapOutcome is the three-way result of the recipient daily-cap check.
type DailyCapOutcome int

const (
	// FirstPointOfTheDay means no grant happened in the current 24h window;
	// the counter restarts at 1 and the window is re-stamped.
	FirstPointOfTheDay DailyCapOutcome = iota
	// LimitNotExceeded means the window is active and the counter may grow.
	LimitNotExceeded
	// LimitExceeded means the recipient already hit the daily cap.
	LimitExceeded
)

// RoleEvaluator reacts to a recipient's new points total. Implementations
// must not return pipeline-fatal errors; grant failures are their concern.
type RoleEvaluator interface {
	OnPointsChanged(ctx context.Context, guildID, userID, newTotal int64)
}

// PointsService runs the award pipeline: thank detection, recipient
// resolution, sender cooldown, recipient daily cap, ledger writes and the
// autorole trigger.
type PointsService struct {
	repo       repository.PointsRepository
	detector   *Detector
	roles      RoleEvaluator
	cooldown   time.Duration
	dailyLimit int
	locks      keyedLocks
	now        func() time.Time
}

func NewPointsService(repo repository.PointsRepository, detector *Detector, roles RoleEvaluator, cooldownMinutes, dailyLimit int) *PointsService {
	return &PointsService{
		repo:       repo,
		detector:   detector,
		roles:      roles,
		cooldown:   time.Duration(cooldownMinutes) * time.Minute,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

// ProcessMessage runs the pipeline for one inbound message and returns the
// user IDs that received a point. Policy rejections (cooldown, daily cap,
// nothing to thank) are silent: empty result, nil error, no writes.
func (s *PointsService) ProcessMessage(ctx context.Context, m *model.Message) ([]int64, error) {
	if m.AuthorBot {
		return nil, nil
	}
	if !s.detector.IsThank(m.Content) {
		return nil, nil
	}
	recipients := Recipients(m)
	if len(recipients) == 0 {
		return nil, nil
	}

	if err := s.recordThank(ctx, m.GuildID, m.AuthorID); err != nil {
		if errors.Is(err, errOnCooldown) {
			return nil, nil
		}
		return nil, fmt.Errorf("record thank: %w", err)
	}

	awarded := make([]int64, 0, len(recipients))
	for _, userID := range recipients {
		ok, total, err := s.awardPoint(ctx, m.GuildID, userID)
		if err != nil {
			// The worst case for a single recipient is a skipped award;
			// the rest of the message is still processed.
			log.Printf("award point to %d in guild %d: %v", userID, m.GuildID, err)
			continue
		}
		if !ok {
			continue
		}
		awarded = append(awarded, userID)
		if s.roles != nil {
			s.roles.OnPointsChanged(ctx, m.GuildID, userID, total)
		}
	}
	return awarded, nil
}

var errOnCooldown = errors.New("sender on cooldown")

// recordThank checks the sender cooldown and, when it passes, stamps the
// sender's last_thanks and thank count. Sender bookkeeping is never subject
// to the recipient daily cap.
func (s *PointsService) recordThank(ctx context.Context, guildID, senderID int64) error {
	unlock := s.locks.acquire(lockKey{guildID, senderID})
	defer unlock()

	now := s.now()
	rec, err := s.repo.Get(ctx, guildID, senderID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		rec = &model.PointsRecord{
			GuildID:     guildID,
			UserID:      senderID,
			NumOfThanks: 1,
			LastThanks:  &now,
		}
		return s.repo.Create(ctx, rec)
	case err != nil:
		return err
	}

	if rec.LastThanks != nil && now.Sub(*rec.LastThanks) < s.cooldown {
		return errOnCooldown
	}
	rec.LastThanks = &now
	rec.NumOfThanks++
	return s.repo.Update(ctx, rec)
}

// awardPoint applies the daily-cap policy and persists one point for the
// recipient. It reports whether the point was granted and the new total.
func (s *PointsService) awardPoint(ctx context.Context, guildID, userID int64) (bool, int64, error) {
	unlock := s.locks.acquire(lockKey{guildID, userID})
	defer unlock()

	now := s.now()
	rec, err := s.repo.Get(ctx, guildID, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		rec = &model.PointsRecord{
			GuildID:                  guildID,
			UserID:                   userID,
			Points:                   1,
			LastReceivedPointsDate:   &now,
			CurrentDayReceivedPoints: 1,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return false, 0, err
		}
		return true, rec.Points, nil
	case err != nil:
		return false, 0, err
	}

	switch s.dailyCap(rec, now) {
	case LimitExceeded:
		return false, rec.Points, nil
	case FirstPointOfTheDay:
		rec.CurrentDayReceivedPoints = 1
		rec.LastReceivedPointsDate = &now
	case LimitNotExceeded:
		rec.CurrentDayReceivedPoints++
	}
	rec.Points++
	if err := s.repo.Update(ctx, rec); err != nil {
		return false, 0, err
	}
	return true, rec.Points, nil
}

// dailyCap evaluates the recipient's 24h receiving window. Callers must
// branch on all three outcomes.
func (s *PointsService) dailyCap(rec *model.PointsRecord, now time.Time) DailyCapOutcome {
	if rec.LastReceivedPointsDate == nil || rec.CurrentDayReceivedPoints == 0 ||
		now.Sub(*rec.LastReceivedPointsDate) > 24*time.Hour {
		return FirstPointOfTheDay
	}
	if rec.CurrentDayReceivedPoints >= s.dailyLimit {
		return LimitExceeded
	}
	return LimitNotExceeded
}
