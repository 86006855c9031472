package bot

import (
	"fmt"
	"log"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/honkbot/honkbot/internal/google"
	"github.com/honkbot/honkbot/internal/speedrun"
)

func (b *Bot) commands() []api.CreateCommandData {
	return []api.CreateCommandData{
		{
			Name:        "test",
			Description: "Test if the bot is working",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "input",
					Description: "Test input",
				},
			},
		},
		{
			Name:           "eamuse",
			Description:    "Gets e-amusement maintenance time",
			NoDMPermission: true,
		},
		{
			Name:           "join",
			Description:    "Adds the given role to you",
			NoDMPermission: true,
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:   "role",
					Description:  "Role to be added to you",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:           "leave",
			Description:    "Removes the given role from you",
			NoDMPermission: true,
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:   "role",
					Description:  "Role to be removed from you",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "insult",
			Description: "Returns a scathing insult about the given name",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "name",
					Description: "Name to insult",
					Required:    true,
				},
			},
		},
		{
			Name:        "ranatalus",
			Description: "Returns a scathing insult about this particular name",
		},
		{
			Name:        "record",
			Description: "Accesses speedrun.com to get the world record of the given game",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "search",
					Description: "Search terms to use",
					MaxLength:   option.NewInt(speedrun.MaxQueryLength - 1),
				},
			},
		},
		{
			Name:        "image",
			Description: "Returns an image from Google from the given search terms",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "search",
					Description: "Search terms to use",
					MaxLength:   option.NewInt(google.MaxImageQueryLength - 1),
				},
			},
		},
		{
			Name:        "youtube",
			Description: "Returns a video from YouTube from the given search terms",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "search",
					Description: "Search terms to use",
					MaxLength:   option.NewInt(google.MaxVideoQueryLength - 1),
				},
			},
		},
		{
			Name:        "jacket",
			Description: "Returns a jacket for a bemani song from remywiki",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "title",
					Description: "Name of the song to search for",
					Required:    true,
				},
			},
		},
		{
			Name:        "banner",
			Description: "Returns a banner for a bemani song from remywiki",
			Options: []discord.CommandOption{
				&discord.StringOption{
					OptionName:  "title",
					Description: "Name of the song to search for",
					Required:    true,
				},
			},
		},
	}
}

// overrideCommands registers the slash commands for the configured guild only
// or globally when no guild is configured. Guild commands are available immediately.
func (b *Bot) overrideCommands() error {
	cmds := b.commands()

	if !b.guildID.IsValid() {
		return cmdroute.OverwriteCommands(b.state, cmds)
	}

	app, err := b.state.CurrentApplication()
	if err != nil {
		return fmt.Errorf("failed to get current application: %w", err)
	}

	_, err = b.state.BulkOverwriteGuildCommands(app.ID, b.guildID, cmds)
	if err != nil {
		return fmt.Errorf("failed to overwrite commands of guild %s: %w", b.guildID, err)
	}
	log.Printf("registered %d commands for guild %s", len(cmds), b.guildID)
	return nil
}
