package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/honkbot/honkbot/internal/discordutils"
	"github.com/honkbot/honkbot/internal/options"
)

const messageMissingPermissions = "I do not have permissions to assign roles right now. Sorry!"

var errNotJoinable = errors.New("role is not joinable")

// joinableRole returns the configured spelling of a joinable role name.
func (b *Bot) joinableRole(input string) (string, error) {
	input = strings.TrimSpace(input)
	idx := slices.IndexFunc(b.joinableRoles, func(role string) bool {
		return strings.EqualFold(role, input)
	})
	if idx < 0 {
		return "", fmt.Errorf("%w: %s: Allowed roles are: %s", errNotJoinable, input, strings.Join(b.joinableRoles, ", "))
	}
	return b.joinableRoles[idx], nil
}

func (b *Bot) roleByName(guildID discord.GuildID, name string) (discord.Role, error) {
	roles, err := b.state.Roles(guildID)
	if err != nil {
		return discord.Role{}, fmt.Errorf("failed to get roles of guild %s: %w", guildID, err)
	}

	for _, role := range roles {
		if role.Name == name {
			return role, nil
		}
	}
	return discord.Role{}, fmt.Errorf("role %s not found", name)
}

func (b *Bot) commandJoin(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.updateMemberRole(data, true)
}

func (b *Bot) commandLeave(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.updateMemberRole(data, false)
}

func (b *Bot) updateMemberRole(data cmdroute.CommandData, join bool) *api.InteractionResponseData {
	member := data.Event.Member
	if member == nil {
		return errorResponse(errors.New("roles can only be joined on a server"))
	}

	input, err := options.String("role", data.Options)
	if err != nil {
		return errorResponse(err)
	}

	name, err := b.joinableRole(input)
	if err != nil {
		if errors.Is(err, errNotJoinable) {
			return ephemeralResponse("Allowed roles are: " + strings.Join(b.joinableRoles, ", "))
		}
		return errorResponse(err)
	}

	var (
		guildID     = data.Event.GuildID
		userID      = member.User.ID
		displayName = member.User.Username
	)
	if member.Nick != "" {
		displayName = member.Nick
	}

	role, err := b.roleByName(guildID, name)
	if err != nil {
		return errorResponse(err)
	}
	isMember := slices.Contains(member.RoleIDs, role.ID)

	switch {
	case join && isMember:
		return ephemeralResponse(fmt.Sprintf("%s is already in %s", displayName, role.Name))
	case !join && !isMember:
		return ephemeralResponse(fmt.Sprintf("%s is not in %s", displayName, role.Name))
	case join:
		err = b.state.AddRole(guildID, userID, role.ID, api.AddRoleData{
			AuditLogReason: "joined via /join",
		})
	default:
		err = b.state.RemoveRole(guildID, userID, role.ID, "left via /leave")
	}
	if err != nil {
		if discordutils.IsStatus(err, http.StatusForbidden) {
			return ephemeralResponse(messageMissingPermissions)
		}
		return errorResponse(fmt.Errorf("failed to update role %s of user %s: %w", role.Name, userID, err))
	}

	if join {
		log.Printf("added user %s to role %s", userID, role.Name)
		return response(fmt.Sprintf("Adding %s to %s", displayName, role.Name))
	}
	log.Printf("removed user %s from role %s", userID, role.Name)
	return response(fmt.Sprintf("Removing %s from %s", displayName, role.Name))
}
