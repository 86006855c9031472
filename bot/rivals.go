package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/honkbot/honkbot/internal/format"
	"github.com/honkbot/honkbot/internal/rival"
)

const (
	actionCreate = "create"
	actionSearch = "search"
	actionUpdate = "update"
	actionDelete = "delete"
)

// rivalCommand handles !ddrrival and !iidxrival. Entries are owned by the
// discord user that created them.
func (b *Bot) rivalCommand(ctx context.Context, store *rival.Store, userID string, args []string) string {
	var (
		g    = store.Game()
		help = fmt.Sprintf("Use `!help %s` for more information", g.Command)
	)

	if len(args) == 0 {
		return "Bad action! " + help
	}
	action, args := strings.ToLower(args[0]), args[1:]

	switch action {
	case actionCreate:
		if len(args) < 2 {
			return "Missing required arguments! " + help
		}
		rank := ""
		if len(args) > 2 {
			rank = args[2]
		}
		r, err := g.New(userID, args[0], args[1], rank)
		if err != nil {
			return rivalErrorMessage(g, err, help)
		}

		err = store.Create(ctx, r)
		if err != nil {
			if errors.Is(err, rival.ErrAlreadyExists) {
				return fmt.Sprintf("An entry already exists! Use `%s%s update` to change it", commandPrefix, g.Command)
			}
			log.Println(err)
			return fmt.Sprintf("Cannot create entry for %s! Send help!", r.Name)
		}
		return fmt.Sprintf("Created %s Rival %s!", g.Title, r.Name)

	case actionSearch:
		filters, err := rival.ParseFilters(args)
		if err != nil {
			return rivalErrorMessage(g, err, help)
		}
		rivals, err := store.Search(ctx, filters)
		if err != nil {
			log.Println(err)
			return "Cannot search for rivals! Send help!"
		}
		if len(rivals) == 0 {
			return "No rivals found with that filter!"
		}

		lines := make([]string, 0, len(rivals))
		for _, r := range rivals {
			lines = append(lines, r.String())
		}
		return format.CodeBlock("", strings.Join(lines, "\n"))

	case actionUpdate:
		fields, err := rival.ParseFilters(args)
		if err != nil {
			return rivalErrorMessage(g, err, help)
		}
		err = store.Update(ctx, userID, fields)
		if err != nil {
			if errors.Is(err, rival.ErrNotFound) {
				return "Your entry must be created first. " + strings.Replace(help, "Use", "See", 1)
			}
			if isValidationError(err) {
				return rivalErrorMessage(g, err, help)
			}
			log.Println(err)
			return "Cannot update entry! Send help!"
		}
		return "Entry has been updated!"

	case actionDelete:
		err := store.Delete(ctx, userID)
		if err != nil {
			if errors.Is(err, rival.ErrNotFound) {
				return "Your entry must be created first. " + strings.Replace(help, "Use", "See", 1)
			}
			log.Println(err)
			return "Cannot delete entry! Send help!"
		}
		return "Entry has been deleted!"

	default:
		return "Bad action! " + help
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, rival.ErrInvalidName) ||
		errors.Is(err, rival.ErrInvalidCode) ||
		errors.Is(err, rival.ErrInvalidRank) ||
		errors.Is(err, rival.ErrInvalidAttribute)
}

func rivalErrorMessage(g rival.Game, err error, help string) string {
	switch {
	case errors.Is(err, rival.ErrInvalidName):
		return fmt.Sprintf("%s must be at most %d characters!", g.PlayerLabel, g.MaxNameLength)
	case errors.Is(err, rival.ErrInvalidCode):
		return fmt.Sprintf("%s must follow the following format: `####-####`", g.CodeLabel)
	case errors.Is(err, rival.ErrInvalidRank):
		return "Rank is not valid! Options are #dan, #kyu, chuu, or kai"
	case errors.Is(err, rival.ErrNoFilters):
		return "Missing filters! " + help
	case errors.Is(err, rival.ErrInvalidAttribute):
		return "Invalid filter! " + help
	case errors.Is(err, rival.ErrInvalidFilter):
		return "Invalid filters! " + help
	default:
		log.Println(err)
		return "Cannot do that right now! Send help!"
	}
}
