package service

import (
	"context"
	"fmt"
	"log"

	"github.com/enzo405/Thanks/internal/repository"
)

// RoleGranter is the slice of the gateway session the autorole evaluator
// uses to inspect and mutate member roles.
type RoleGranter interface {
	HasRole(guildID, userID, roleID int64) (bool, error)
	GrantRole(guildID, userID, roleID int64) error
	NotifyUser(userID int64, content string) error
}

// AutoroleService grants configured roles when a user's points total lands
// exactly on a rule's threshold.
type AutoroleService struct {
	repo    repository.AutoroleRepository
	granter RoleGranter
}

func NewAutoroleService(repo repository.AutoroleRepository, granter RoleGranter) *AutoroleService {
	return &AutoroleService{repo: repo, granter: granter}
}

// OnPointsChanged evaluates every rule of the guild against newTotal.
// Matching is exact equality, so a rule fires once per user. Grant failures
// (missing permission, user left, role deleted) are logged and never abort
// the remaining rules.
func (s *AutoroleService) OnPointsChanged(ctx context.Context, guildID, userID, newTotal int64) {
	rules, err := s.repo.ListByGuild(ctx, guildID)
	if err != nil {
		log.Printf("autorole: list rules for guild %d: %v", guildID, err)
		return
	}
	for _, rule := range rules {
		if rule.Threshold != newTotal {
			continue
		}
		has, err := s.granter.HasRole(guildID, userID, rule.RoleID)
		if err != nil {
			log.Printf("autorole: check role %d for user %d: %v", rule.RoleID, userID, err)
			continue
		}
		if has {
			continue
		}
		if err := s.granter.GrantRole(guildID, userID, rule.RoleID); err != nil {
			log.Printf("autorole: grant role %d to user %d: %v", rule.RoleID, userID, err)
			continue
		}
		msg := fmt.Sprintf("You reached %d point(s) and received a new role. Keep helping!", newTotal)
		if err := s.granter.NotifyUser(userID, msg); err != nil {
			log.Printf("autorole: notify user %d: %v", userID, err)
		}
	}
}
