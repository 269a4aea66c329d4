package service

import (
	"context"
	"testing"
	"time"

	"github.com/enzo405/Thanks/internal/model"
	"github.com/enzo405/Thanks/internal/repository"
)

type memPointsRepo struct {
	data    map[[2]int64]*model.PointsRecord
	creates int
	updates int
}

var _ repository.PointsRepository = (*memPointsRepo)(nil)

func newMemPointsRepo() *memPointsRepo {
	return &memPointsRepo{data: map[[2]int64]*model.PointsRecord{}}
}

func (m *memPointsRepo) Get(ctx context.Context, guildID, userID int64) (*model.PointsRecord, error) {
	if rec, ok := m.data[[2]int64{guildID, userID}]; ok {
		copy := *rec
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memPointsRepo) Create(ctx context.Context, rec *model.PointsRecord) error {
	c := *rec
	m.data[[2]int64{rec.GuildID, rec.UserID}] = &c
	m.creates++
	return nil
}

func (m *memPointsRepo) Update(ctx context.Context, rec *model.PointsRecord) error {
	c := *rec
	m.data[[2]int64{rec.GuildID, rec.UserID}] = &c
	m.updates++
	return nil
}

func (m *memPointsRepo) Top(ctx context.Context, guildID int64, limit int) ([]*model.PointsRecord, error) {
	return nil, nil
}

func (m *memPointsRepo) Rank(ctx context.Context, guildID, userID int64) (int, error) {
	return 0, repository.ErrNotFound
}

func (m *memPointsRepo) DeleteGuild(ctx context.Context, guildID int64) error {
	return nil
}

func (m *memPointsRepo) writes() int { return m.creates + m.updates }

type roleCall struct {
	guildID, userID, total int64
}

type recordingEvaluator struct {
	calls []roleCall
}

func (r *recordingEvaluator) OnPointsChanged(ctx context.Context, guildID, userID, newTotal int64) {
	r.calls = append(r.calls, roleCall{guildID, userID, newTotal})
}

func newTestService(repo *memPointsRepo, roles RoleEvaluator, now time.Time) *PointsService {
	svc := NewPointsService(repo, NewDetector([]string{"thanks", "thank", "ty"}), roles, 60, 5)
	svc.now = func() time.Time { return now }
	return svc
}

func TestProcessMessage_NotAThank(t *testing.T) {
	repo := newMemPointsRepo()
	svc := newTestService(repo, nil, time.Now())

	awarded, err := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, Content: "hello <@123>", Mentions: []int64{123},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(awarded) != 0 || repo.writes() != 0 {
		t.Fatalf("expected no side effects, awarded=%v writes=%d", awarded, repo.writes())
	}
}

func TestProcessMessage_NoRecipients(t *testing.T) {
	repo := newMemPointsRepo()
	svc := newTestService(repo, nil, time.Now())

	awarded, err := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, Content: "thanks", Mentions: []int64{999},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(awarded) != 0 || repo.writes() != 0 {
		t.Fatalf("expected no database writes, got %d", repo.writes())
	}
}

func TestProcessMessage_SenderOnCooldown(t *testing.T) {
	repo := newMemPointsRepo()
	now := time.Now()
	lastThanks := now.Add(-10 * time.Minute)
	repo.data[[2]int64{1, 999}] = &model.PointsRecord{
		GuildID: 1, UserID: 999, NumOfThanks: 3, LastThanks: &lastThanks,
	}
	svc := newTestService(repo, nil, now)

	awarded, err := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, Content: "thanks <@123>", Mentions: []int64{123},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(awarded) != 0 {
		t.Fatalf("expected full rejection, awarded %v", awarded)
	}
	if repo.writes() != 0 {
		t.Fatalf("cooldown rejection must not touch any record")
	}
	sender, _ := repo.Get(context.Background(), 1, 999)
	if sender.NumOfThanks != 3 || !sender.LastThanks.Equal(lastThanks) {
		t.Fatalf("sender record changed: %+v", sender)
	}
}

func TestAwardPoint_LimitExceeded(t *testing.T) {
	repo := newMemPointsRepo()
	now := time.Now()
	windowStart := now.Add(-1 * time.Hour)
	repo.data[[2]int64{1, 123}] = &model.PointsRecord{
		GuildID: 1, UserID: 123, Points: 20,
		LastReceivedPointsDate:   &windowStart,
		CurrentDayReceivedPoints: 5,
	}
	svc := newTestService(repo, nil, now)

	ok, total, err := svc.awardPoint(context.Background(), 1, 123)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if ok {
		t.Fatalf("expected limit exceeded")
	}
	rec, _ := repo.Get(context.Background(), 1, 123)
	if rec.Points != 20 || total != 20 {
		t.Fatalf("points changed under limit: %+v", rec)
	}
	if rec.CurrentDayReceivedPoints != 5 {
		t.Fatalf("counter incremented past daily limit: %d", rec.CurrentDayReceivedPoints)
	}
}

func TestAwardPoint_FirstPointOfTheDay(t *testing.T) {
	repo := newMemPointsRepo()
	now := time.Now()
	windowStart := now.Add(-25 * time.Hour)
	repo.data[[2]int64{1, 123}] = &model.PointsRecord{
		GuildID: 1, UserID: 123, Points: 20,
		LastReceivedPointsDate:   &windowStart,
		CurrentDayReceivedPoints: 5,
	}
	svc := newTestService(repo, nil, now)

	ok, total, err := svc.awardPoint(context.Background(), 1, 123)
	if err != nil || !ok {
		t.Fatalf("expected award, ok=%v err=%v", ok, err)
	}
	rec, _ := repo.Get(context.Background(), 1, 123)
	if rec.Points != 21 || total != 21 {
		t.Fatalf("expected 21 points, got %d", rec.Points)
	}
	if rec.CurrentDayReceivedPoints != 1 {
		t.Fatalf("expected counter reset to 1, got %d", rec.CurrentDayReceivedPoints)
	}
	if !rec.LastReceivedPointsDate.Equal(now) {
		t.Fatalf("window start not re-stamped")
	}
}

func TestAwardPoint_WithinWindow(t *testing.T) {
	repo := newMemPointsRepo()
	now := time.Now()
	windowStart := now.Add(-2 * time.Hour)
	repo.data[[2]int64{1, 123}] = &model.PointsRecord{
		GuildID: 1, UserID: 123, Points: 2,
		LastReceivedPointsDate:   &windowStart,
		CurrentDayReceivedPoints: 2,
	}
	svc := newTestService(repo, nil, now)

	ok, _, err := svc.awardPoint(context.Background(), 1, 123)
	if err != nil || !ok {
		t.Fatalf("expected award, ok=%v err=%v", ok, err)
	}
	rec, _ := repo.Get(context.Background(), 1, 123)
	if rec.Points != 3 || rec.CurrentDayReceivedPoints != 3 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.LastReceivedPointsDate.Equal(windowStart) {
		t.Fatalf("window start must not move inside the window")
	}
}

func TestAwardPoint_CreatesRecordLazily(t *testing.T) {
	repo := newMemPointsRepo()
	now := time.Now()
	svc := newTestService(repo, nil, now)

	ok, total, err := svc.awardPoint(context.Background(), 1, 123)
	if err != nil || !ok || total != 1 {
		t.Fatalf("expected first point, ok=%v total=%d err=%v", ok, total, err)
	}
	rec, err := repo.Get(context.Background(), 1, 123)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if rec.Points != 1 || rec.NumOfThanks != 0 || rec.CurrentDayReceivedPoints != 1 {
		t.Fatalf("unexpected created record: %+v", rec)
	}
}

func TestProcessMessage_EndToEnd(t *testing.T) {
	repo := newMemPointsRepo()
	roles := &recordingEvaluator{}
	now := time.Now()
	svc := newTestService(repo, roles, now)

	awarded, err := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, Content: "thanks <@123>", Mentions: []int64{123},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(awarded) != 1 || awarded[0] != 123 {
		t.Fatalf("expected [123] awarded, got %v", awarded)
	}

	sender, _ := repo.Get(context.Background(), 1, 999)
	if sender.NumOfThanks != 1 || sender.LastThanks == nil || sender.Points != 0 {
		t.Fatalf("unexpected sender record: %+v", sender)
	}
	recipient, _ := repo.Get(context.Background(), 1, 123)
	if recipient.Points != 1 || recipient.CurrentDayReceivedPoints != 1 {
		t.Fatalf("unexpected recipient record: %+v", recipient)
	}
	if len(roles.calls) != 1 || roles.calls[0] != (roleCall{1, 123, 1}) {
		t.Fatalf("expected one autorole trigger, got %v", roles.calls)
	}
}

func TestProcessMessage_MultipleRecipients(t *testing.T) {
	repo := newMemPointsRepo()
	svc := newTestService(repo, nil, time.Now())

	awarded, err := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, Content: "ty all", Mentions: []int64{123, 456},
		ReplyAuthorID: 789,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(awarded) != 3 {
		t.Fatalf("expected 3 awards, got %v", awarded)
	}
	for _, id := range []int64{123, 456, 789} {
		rec, err := repo.Get(context.Background(), 1, id)
		if err != nil || rec.Points != 1 {
			t.Fatalf("recipient %d not awarded: %v %+v", id, err, rec)
		}
	}
}

func TestProcessMessage_BotAuthorIgnored(t *testing.T) {
	repo := newMemPointsRepo()
	svc := newTestService(repo, nil, time.Now())

	awarded, _ := svc.ProcessMessage(context.Background(), &model.Message{
		GuildID: 1, AuthorID: 999, AuthorBot: true, Content: "thanks <@123>", Mentions: []int64{123},
	})
	if len(awarded) != 0 || repo.writes() != 0 {
		t.Fatalf("bot messages must be ignored")
	}
}
