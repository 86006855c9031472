package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/honkbot/honkbot/internal/format"
	"github.com/honkbot/honkbot/internal/google"
	"github.com/honkbot/honkbot/internal/insult"
	"github.com/honkbot/honkbot/internal/options"
	"github.com/honkbot/honkbot/internal/remywiki"
	"github.com/honkbot/honkbot/internal/smx"
	"github.com/honkbot/honkbot/internal/speedrun"
)

const messageDisabled = "Sorry, cant do that right now! Ask your admin to enable"

func (b *Bot) commandTest(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	input := options.StringOption("input", data.Options, "")
	if input == "" {
		return response("test")
	}
	return response("test: " + input)
}

func (b *Bot) commandInsult(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.insultResponse(ctx, options.StringOption("name", data.Options, ""))
}

func (b *Bot) commandRanatalus(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.insultResponse(ctx, "Ranatalus")
}

func (b *Bot) insultResponse(ctx context.Context, name string) *api.InteractionResponseData {
	msg, err := b.insult.Insult(ctx, name)
	if err != nil {
		if errors.Is(err, insult.ErrNoName) {
			return ephemeralResponse("No one to insult :(")
		}
		return errorResponse(err)
	}
	return response(msg)
}

// searchFirstOnly returns true when the same search was requested twice in a row.
func (b *Bot) searchFirstOnly(query string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	repeated := strings.EqualFold(b.lastRecordSearch, query)
	b.lastRecordSearch = query
	return repeated
}

func (b *Bot) commandRecord(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if b.speedrun == nil {
		return ephemeralResponse(messageDisabled + " speedrun.com searches")
	}

	query := options.StringOption("search", data.Options, "")
	if query == "" {
		return ephemeralResponse("You gotta give me a game to look for...")
	}

	lookup, err := b.speedrun.AnyPercentRecord(ctx, query, b.searchFirstOnly(query))
	if err != nil {
		if errors.Is(err, speedrun.ErrQueryTooLong) {
			return ephemeralResponse("Query too long!")
		}
		return errorResponse(err)
	}

	if lookup.Ephemeral() {
		return ephemeralResponse(lookup.String())
	}
	return response(lookup.String())
}

func (b *Bot) commandImage(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if b.google == nil {
		return ephemeralResponse(messageDisabled + " Google searches")
	}

	query := options.StringOption("search", data.Options, "")
	link, err := b.google.Image(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, google.ErrEmptyQuery):
			return ephemeralResponse("Usage: /image <search term>")
		case errors.Is(err, google.ErrQueryTooLong):
			return ephemeralResponse("Query too big!")
		case errors.Is(err, google.ErrNoResults):
			return ephemeralResponse(fmt.Sprintf("No results found for %s :(", format.Escape(query)))
		default:
			return errorResponse(err)
		}
	}
	return response(link)
}

func (b *Bot) commandYoutube(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	if b.google == nil {
		return ephemeralResponse(messageDisabled + " YouTube searches")
	}

	query := options.StringOption("search", data.Options, "")
	link, err := b.google.Video(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, google.ErrEmptyQuery):
			return ephemeralResponse("Usage: /youtube <search terms>")
		case errors.Is(err, google.ErrQueryTooLong):
			return ephemeralResponse("Query too long!")
		case errors.Is(err, google.ErrNoResults):
			return ephemeralResponse(fmt.Sprintf("Could not find any videos with search %s", format.Escape(query)))
		default:
			return errorResponse(err)
		}
	}
	return response(link)
}

func (b *Bot) commandJacket(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.remywikiImage(ctx, data, remywiki.Jacket)
}

func (b *Bot) commandBanner(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return b.remywikiImage(ctx, data, remywiki.Banner)
}

func (b *Bot) remywikiImage(ctx context.Context, data cmdroute.CommandData, kind remywiki.ImageType) *api.InteractionResponseData {
	title, err := options.String("title", data.Options)
	if err != nil {
		return ephemeralResponse("You gotta give me a song to look for...")
	}

	result, err := b.remywiki.Image(ctx, title, kind)
	if err != nil {
		return errorResponse(err)
	}
	if result.Kind == remywiki.NoSong {
		return ephemeralResponse(result.String())
	}
	return response(result.String())
}

// smxJacket answers !smxjacket with a link to the jacket of a StepManiaX song.
func (b *Bot) smxJacket(ctx context.Context, title string) string {
	link, err := b.smx.Jacket(ctx, title)
	switch {
	case err == nil:
		return link
	case errors.Is(err, smx.ErrEmptyTitle):
		return "Usage: !smxjacket <title>"
	case errors.Is(err, smx.ErrNotFound):
		return "StepManiaX API failed to return a song."
	case errors.Is(err, smx.ErrUnreachable):
		return "StepManiaX API could not be reached."
	default:
		log.Printf("failed to get smx jacket for %q: %v", title, err)
		return "StepManiaX API could not be reached."
	}
}
