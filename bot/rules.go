package bot

import (
	"log"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/honkbot/honkbot/internal/discordutils"
)

func (b *Bot) isRulesMessage(channelID discord.ChannelID, messageID discord.MessageID) bool {
	return b.rules.messageID.IsValid() &&
		channelID == b.rules.channelID &&
		messageID == b.rules.messageID
}

// handleAddRulesReaction grants the rules role for the rules emoji.
// Any other emoji on the rules message is removed.
func (b *Bot) handleAddRulesReaction(e *gateway.MessageReactionAddEvent) {
	if b.isMe(e.UserID) || !b.isRulesMessage(e.ChannelID, e.MessageID) {
		return
	}

	if e.Emoji.Name != b.rules.emoji {
		err := b.state.DeleteReactions(e.ChannelID, e.MessageID, e.Emoji.APIString())
		if err != nil {
			log.Printf("failed to clear reaction %s from rules message %s: %v", e.Emoji.Name, e.MessageID, err)
		}
		return
	}

	role, err := b.roleByName(e.GuildID, b.rules.role)
	if err != nil {
		log.Printf("failed to get rules role: %v", err)
		return
	}

	err = b.state.AddRole(e.GuildID, e.UserID, role.ID, api.AddRoleData{
		AuditLogReason: "accepted the rules",
	})
	if err != nil {
		logRoleError("add", role, e.UserID, err)
		return
	}
	log.Printf("added user %s to rules role %s", e.UserID, role.Name)
}

func (b *Bot) handleRemoveRulesReaction(e *gateway.MessageReactionRemoveEvent) {
	if b.isMe(e.UserID) || !b.isRulesMessage(e.ChannelID, e.MessageID) || e.Emoji.Name != b.rules.emoji {
		return
	}

	role, err := b.roleByName(e.GuildID, b.rules.role)
	if err != nil {
		log.Printf("failed to get rules role: %v", err)
		return
	}

	err = b.state.RemoveRole(e.GuildID, e.UserID, role.ID, "removed the rules reaction")
	if err != nil {
		logRoleError("remove", role, e.UserID, err)
		return
	}
	log.Printf("removed user %s from rules role %s", e.UserID, role.Name)
}

func logRoleError(action string, role discord.Role, userID discord.UserID, err error) {
	if discordutils.IsStatus4XX(err) {
		log.Printf("missing permissions to %s rules role %s of user %s: %v", action, role.Name, userID, err)
		return
	}
	log.Printf("failed to %s rules role %s of user %s: %v", action, role.Name, userID, err)
}
