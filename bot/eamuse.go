package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/honkbot/honkbot/internal/format"
	"github.com/honkbot/honkbot/internal/maintenance"
)

const (
	labelUSServers = "US Servers (DDR White, IIDX Lightning)"
	labelJPServers = "JP Servers (DDR Gold, IIDX Classic, All Other)"

	messageWebsiteDown = "Login to e-amusement website unavailable during this time."
	messageCardDown    = "e-amusement card cannot be used during this time."
)

func (b *Bot) commandEamuse(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	msg, err := b.eamuseMessage(time.Now())
	if err != nil {
		return errorResponse(err)
	}
	return response(msg)
}

func (b *Bot) eamuseMessage(now time.Time) (string, error) {
	r, err := b.evaluator.Evaluate(now)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate maintenance: %w", err)
	}

	// the website is maintained daily even when the game servers are not
	website := r.Other
	if !r.Extended && !website.Scheduled {
		normal, err := b.evaluator.Schedule().Lookup(maintenance.WindowNormal)
		if err != nil {
			return "", err
		}
		website = b.evaluator.DisplayWindow(now, normal, nil)
	}

	return FormatEamuse(r, website), nil
}

// FormatEamuse renders a maintenance report with one line per server group.
func FormatEamuse(r maintenance.Report, website maintenance.Status) string {
	lines := make([]string, 0, 3)
	if r.Extended {
		lines = append(lines, format.Bold(fmt.Sprintf(
			"Extended Maintenance today. All games and e-amusement websites under maintenance from %s. %s %s",
			span(r.Other), messageWebsiteDown, messageCardDown,
		)))
	}

	lines = append(lines,
		serverLine(labelUSServers, "US game servers", r.Primary),
		serverLine(labelJPServers, "Japanese game servers", r.Other),
	)

	if !r.Extended {
		lines = append(lines, format.Bold(fmt.Sprintf(
			"Website under maintenance from %s daily. %s",
			span(website), messageWebsiteDown,
		)))
	}
	return strings.Join(lines, "\n")
}

func serverLine(label, servers string, s maintenance.Status) string {
	if !s.Scheduled {
		return label + ": :white_check_mark: " + format.Bold("No maintenance today.")
	}

	icon := ":white_check_mark:"
	if s.Active {
		icon = ":x:"
	}
	return fmt.Sprintf("%s: %s %s", label, icon, format.Bold(fmt.Sprintf(
		"%s under maintenance from %s today. %s", servers, span(s), messageCardDown,
	)))
}

// span appends the zone abbreviation, e.g. 16:00-18:00 EDT
func span(s maintenance.Status) string {
	return s.Span() + " " + s.Begin.Format("MST")
}
