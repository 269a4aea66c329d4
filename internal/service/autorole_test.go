package service

import (
	"context"
	"errors"
	"testing"

	"github.com/enzo405/Thanks/internal/model"
	"github.com/enzo405/Thanks/internal/repository"
)

type memAutoroleRepo struct {
	rules []model.AutoroleRule
}

var _ repository.AutoroleRepository = (*memAutoroleRepo)(nil)

func (m *memAutoroleRepo) ListByGuild(ctx context.Context, guildID int64) ([]model.AutoroleRule, error) {
	out := []model.AutoroleRule{}
	for _, r := range m.rules {
		if r.GuildID == guildID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAutoroleRepo) Add(ctx context.Context, rule model.AutoroleRule) error {
	m.rules = append(m.rules, rule)
	return nil
}

func (m *memAutoroleRepo) RemoveRole(ctx context.Context, guildID, roleID int64) error {
	kept := m.rules[:0]
	for _, r := range m.rules {
		if r.GuildID != guildID || r.RoleID != roleID {
			kept = append(kept, r)
		}
	}
	m.rules = kept
	return nil
}

func (m *memAutoroleRepo) DeleteGuild(ctx context.Context, guildID int64) error {
	return nil
}

type fakeGranter struct {
	held     map[int64]bool
	granted  []int64
	notified []int64
	grantErr error
}

func (f *fakeGranter) HasRole(guildID, userID, roleID int64) (bool, error) {
	return f.held[roleID], nil
}

func (f *fakeGranter) GrantRole(guildID, userID, roleID int64) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.granted = append(f.granted, roleID)
	return nil
}

func (f *fakeGranter) NotifyUser(userID int64, content string) error {
	f.notified = append(f.notified, userID)
	return nil
}

func TestAutorole_GrantAtExactThreshold(t *testing.T) {
	repo := &memAutoroleRepo{rules: []model.AutoroleRule{
		{GuildID: 1, RoleID: 10, Threshold: 10},
		{GuildID: 1, RoleID: 20, Threshold: 50},
	}}
	granter := &fakeGranter{held: map[int64]bool{}}
	svc := NewAutoroleService(repo, granter)

	svc.OnPointsChanged(context.Background(), 1, 123, 10)
	if len(granter.granted) != 1 || granter.granted[0] != 10 {
		t.Fatalf("expected role 10 granted, got %v", granter.granted)
	}
	if len(granter.notified) != 1 || granter.notified[0] != 123 {
		t.Fatalf("expected user notified, got %v", granter.notified)
	}

	// one past the threshold grants nothing further
	granter.granted = nil
	svc.OnPointsChanged(context.Background(), 1, 123, 11)
	if len(granter.granted) != 0 {
		t.Fatalf("expected no grant at 11, got %v", granter.granted)
	}
}

func TestAutorole_AlreadyHeld(t *testing.T) {
	repo := &memAutoroleRepo{rules: []model.AutoroleRule{{GuildID: 1, RoleID: 10, Threshold: 5}}}
	granter := &fakeGranter{held: map[int64]bool{10: true}}
	svc := NewAutoroleService(repo, granter)

	svc.OnPointsChanged(context.Background(), 1, 123, 5)
	if len(granter.granted) != 0 || len(granter.notified) != 0 {
		t.Fatalf("held role must not be re-granted")
	}
}

func TestAutorole_GrantFailureNonFatal(t *testing.T) {
	repo := &memAutoroleRepo{rules: []model.AutoroleRule{
		{GuildID: 1, RoleID: 10, Threshold: 5},
		{GuildID: 1, RoleID: 20, Threshold: 5},
	}}
	granter := &fakeGranter{held: map[int64]bool{}, grantErr: errors.New("missing permissions")}
	svc := NewAutoroleService(repo, granter)

	// must not panic or abort; both rules are attempted
	svc.OnPointsChanged(context.Background(), 1, 123, 5)
	if len(granter.notified) != 0 {
		t.Fatalf("failed grant must not notify")
	}
}
