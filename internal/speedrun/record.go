package speedrun

import (
	"context"
	"fmt"
	"strings"
)

type Kind int

const (
	NotFound Kind = iota
	Found
	NoRecords
	Ambiguous
	TooMany
)

type Lookup struct {
	Kind       Kind
	Game       string
	Time       string
	Player     string
	Candidates []string
}

// Ephemeral is true for results that are only useful to the user that searched.
func (l Lookup) Ephemeral() bool {
	switch l.Kind {
	case Found, NoRecords:
		return false
	default:
		return true
	}
}

func (l Lookup) String() string {
	switch l.Kind {
	case Found:
		return fmt.Sprintf("The Any%% record for %s is %s by %s", l.Game, l.Time, l.Player)
	case NoRecords:
		return fmt.Sprintf("There are no Any%% records for %s", l.Game)
	case Ambiguous:
		return fmt.Sprintf("Multiple results. Do a search for the following: %s\nIf you want the first result, redo the search",
			strings.Join(l.Candidates, ", "))
	case TooMany:
		return "Too many results! Be a little more specific"
	default:
		return "No games with that name found!"
	}
}

// AnyPercentRecord looks up the world record of the first Any% category of
// the game that matches query. With firstOnly set, the first search result is
// used even if the search is ambiguous.
func (c *Client) AnyPercentRecord(ctx context.Context, query string, firstOnly bool) (Lookup, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Lookup{}, ErrEmptyQuery
	}
	if len(query) >= MaxQueryLength {
		return Lookup{}, fmt.Errorf("%w: at most %d characters", ErrQueryTooLong, MaxQueryLength-1)
	}

	games, err := c.SearchGames(ctx, query)
	if err != nil {
		return Lookup{}, err
	}

	switch {
	case len(games) == 0:
		return Lookup{Kind: NotFound}, nil
	case firstOnly:
		games = games[:1]
	}

	if len(games) >= maxListedResults {
		return Lookup{Kind: TooMany}, nil
	}
	if len(games) > 1 {
		names := make([]string, 0, len(games))
		for _, g := range games {
			names = append(names, g.Names.International)
		}
		return Lookup{Kind: Ambiguous, Candidates: names}, nil
	}

	game, err := c.Game(ctx, games[0].ID)
	if err != nil {
		return Lookup{}, err
	}
	result := Lookup{
		Kind: NoRecords,
		Game: game.Names.International,
	}

	categories, err := c.Categories(ctx, game.ID)
	if err != nil {
		return Lookup{}, err
	}

	recordsURL := ""
	for _, category := range categories {
		if !strings.HasPrefix(category.Name, "Any%") {
			continue
		}
		for _, l := range category.Links {
			if strings.Contains(l.Rel, "records") {
				recordsURL = l.URI
			}
		}
		break
	}
	if recordsURL == "" {
		return result, nil
	}

	boards, err := c.Records(ctx, recordsURL)
	if err != nil {
		return Lookup{}, err
	}
	if len(boards) == 0 || len(boards[0].Runs) == 0 || len(boards[0].Runs[0].Run.Players) == 0 {
		return result, nil
	}
	run := boards[0].Runs[0].Run

	player := run.Players[0]
	playerName := player.Name
	if player.Rel != "guest" {
		user, err := c.User(ctx, player.ID)
		if err != nil {
			return Lookup{}, err
		}
		playerName = user.Names.International
	}

	result.Kind = Found
	result.Time = strings.TrimPrefix(run.Times.Realtime, "PT")
	result.Player = playerName
	return result, nil
}
