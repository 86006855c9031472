package bot

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/honkbot/honkbot/internal/format"
	"github.com/honkbot/honkbot/internal/rival"
)

const commandPrefix = "!"

var prefixCommands = []string{
	"eamuse",
	"smxjacket",
	rival.DDR.Command,
	rival.IIDX.Command,
	"help",
}

func (b *Bot) handleMessage(e *gateway.MessageCreateEvent) {
	if e.Author.Bot || b.isMe(e.Author.ID) {
		return
	}

	replies := honkReplies(e.Author.Username, e.Content)

	reply, ok := b.prefixCommand(b.ctx, e.Author.ID, e.Content)
	if ok {
		replies = append(replies, reply)
	}

	for _, r := range replies {
		b.send(e.ChannelID, r)
	}
}

func (b *Bot) send(channelID discord.ChannelID, content string) {
	_, err := b.state.SendMessageComplex(channelID, api.SendMessageData{
		Content:         content,
		AllowedMentions: &api.AllowedMentions{ /* none */ },
	})
	if err != nil {
		log.Printf("failed to send message to channel %s: %v", channelID, err)
	}
}

// honkReplies answers to keywords anywhere in a message.
func honkReplies(author, content string) []string {
	var (
		lower   = strings.ToLower(content)
		replies = make([]string, 0, 2)
	)

	if strings.Contains(lower, "honk") {
		// HONK WINS AGAIN
		if strings.Contains(author, "Skeeter") {
			replies = append(replies, "beep")
		} else {
			replies = append(replies, "HONK!")
		}
	}
	if strings.Contains(lower, "dygma") {
		replies = append(replies, "whats dygma")
	}
	return replies
}

// prefixCommand executes a message command like !eamuse. ok is false for
// messages that are not a known command.
func (b *Bot) prefixCommand(ctx context.Context, userID discord.UserID, content string) (reply string, ok bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], commandPrefix) {
		return "", false
	}

	var (
		name = strings.ToLower(strings.TrimPrefix(fields[0], commandPrefix))
		args = fields[1:]
	)

	switch name {
	case "eamuse":
		msg, err := b.eamuseMessage(time.Now())
		if err != nil {
			log.Println(err)
			return "Cannot get the maintenance times right now! Send help!", true
		}
		return msg, true
	case "smxjacket":
		return b.smxJacket(ctx, strings.Join(args, " ")), true
	case rival.DDR.Command:
		return b.rivalCommand(ctx, b.ddr, userID.String(), args), true
	case rival.IIDX.Command:
		return b.rivalCommand(ctx, b.iidx, userID.String(), args), true
	case "help":
		return helpMessage(args), true
	default:
		return "", false
	}
}

func helpMessage(args []string) string {
	if len(args) == 0 {
		names := make([]string, 0, len(prefixCommands))
		for _, c := range prefixCommands {
			names = append(names, commandPrefix+c)
		}
		return fmt.Sprintf("Commands are: %s\nUse `!help <command>` for more information", strings.Join(names, ", "))
	}

	name := strings.ToLower(strings.TrimPrefix(args[0], commandPrefix))
	if !slices.Contains(prefixCommands, name) {
		return fmt.Sprintf("No command called %q found.", args[0])
	}

	var text string
	switch name {
	case "eamuse":
		text = "!eamuse\n\nGets e-amusement maintenance time."
	case "smxjacket":
		text = "!smxjacket <title>\n\nReturns a jacket for a stepmaniax song from the StepManiaX API."
	case rival.DDR.Command:
		text = rivalHelp(rival.DDR)
	case rival.IIDX.Command:
		text = rivalHelp(rival.IIDX)
	default:
		text = "!help [command]\n\nShows the available commands or the usage of a single command."
	}
	return format.CodeBlock("", text)
}

func rivalHelp(g rival.Game) string {
	var (
		cmd  = commandPrefix + g.Command
		code = g.Title + "-CODE"
	)
	lines := []string{
		cmd + " <action> [arguments]",
		"",
		"Accesses eAmuse rival data stored by the users",
		"",
		"Actions:",
		fmt.Sprintf("    create NAME %s [DANRANK (8dan, kai, etc.)]", code),
		fmt.Sprintf("    search [name=NAME] [code=%s] [rank=DANRANK]", code),
		fmt.Sprintf("    update [name=NAME] [code=%s] [rank=DANRANK]", code),
		"    delete",
		"",
		"Examples:",
		fmt.Sprintf("    %s create SPOOKY 1234-5678 8dan", cmd),
		fmt.Sprintf("    %s search name=SPOOKY", cmd),
		fmt.Sprintf("    %s update code=8888-8888 rank=10dan", cmd),
		fmt.Sprintf("    %s delete", cmd),
	}
	return strings.Join(lines, "\n")
}
