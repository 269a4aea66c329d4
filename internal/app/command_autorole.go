package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/enzo405/Thanks/internal/model"
	"github.com/enzo405/Thanks/pkg/discord"
)

// managePermissions are the permissions an autorole target must not carry;
// the bot must never hand out moderation powers for points.
const managePermissions = discordgo.PermissionAdministrator |
	discordgo.PermissionModerateMembers |
	discordgo.PermissionManageRoles |
	discordgo.PermissionManageChannels

func (a *App) handleAddAutorole(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isAdmin(i) {
		return respondText(s, i, "Only server administrators can use this command", true)
	}

	var role *discordgo.Role
	var threshold int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		case "threshold":
			threshold = opt.IntValue()
		}
	}
	if role == nil {
		return errors.New("could not resolve the role")
	}
	if threshold < 1 {
		return respondText(s, i, "The threshold must be a positive number of points", true)
	}
	if role.Permissions&managePermissions != 0 {
		return respondText(s, i,
			"You cannot assign an autorole to a role with manage permissions (roles, channels, members).", true)
	}

	guildID, err := discord.ParseID(i.GuildID)
	if err != nil {
		return err
	}
	roleID, err := discord.ParseID(role.ID)
	if err != nil {
		return err
	}
	rule := model.AutoroleRule{GuildID: guildID, RoleID: roleID, Threshold: threshold}
	if err := a.autoroleRepo.Add(context.Background(), rule); err != nil {
		return err
	}

	msg := fmt.Sprintf("The role %s will now be given to users with a total of %d points.",
		discord.RoleMention(roleID), threshold)
	return respondText(s, i, msg, true)
}

func (a *App) handleRemoveAutorole(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !isAdmin(i) {
		return respondText(s, i, "Only server administrators can use this command", true)
	}

	var role *discordgo.Role
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "role" {
			role = opt.RoleValue(s, i.GuildID)
		}
	}
	if role == nil {
		return errors.New("could not resolve the role")
	}

	guildID, err := discord.ParseID(i.GuildID)
	if err != nil {
		return err
	}
	roleID, err := discord.ParseID(role.ID)
	if err != nil {
		return err
	}
	if err := a.autoroleRepo.RemoveRole(context.Background(), guildID, roleID); err != nil {
		return err
	}

	msg := "The role " + discord.RoleMention(roleID) + " isn't in the autoroles anymore."
	return respondText(s, i, msg, true)
}
