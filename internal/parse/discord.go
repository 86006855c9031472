package parse

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
)

// id parses a snowflake that was copied from the discord client with
// developer mode enabled. kind is only used for the error message.
func id[T ~uint64](kind, s string) (T, error) {
	sf, err := discord.ParseSnowflake(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: %w", kind, s, err)
	}
	if !sf.IsValid() {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return T(sf), nil
}

func GuildID(s string) (discord.GuildID, error) {
	return id[discord.GuildID]("guild", s)
}

func ChannelID(s string) (discord.ChannelID, error) {
	return id[discord.ChannelID]("channel", s)
}

func MessageID(s string) (discord.MessageID, error) {
	return id[discord.MessageID]("message", s)
}
