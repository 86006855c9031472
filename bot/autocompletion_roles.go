package bot

import (
	"log"
	"sort"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// discord allows at most 25 autocomplete choices
const maxChoices = 25

func (b *Bot) handleAutocompletionRoleInteraction(e *gateway.InteractionCreateEvent) {
	d, ok := e.Data.(*discord.AutocompleteInteraction)
	if !ok {
		return
	}
	if d.Name != "join" && d.Name != "leave" {
		return
	}
	focused := d.Options.Focused()
	if focused.Name != "role" {
		return
	}

	choices := roleChoices(focused.String(), b.joinableRoles)
	resp := api.InteractionResponse{
		Type: api.AutocompleteResult,
		Data: &api.InteractionResponseData{
			Choices: &choices,
		},
	}

	if err := b.state.RespondInteraction(e.ID, e.Token, resp); err != nil {
		log.Println("failed to send interaction callback:", err)
	}
}

// roleChoices ranks the roles by how well they match the search term.
// An empty search term returns all roles in their configured order.
func roleChoices(searchTerm string, roles []string) api.AutocompleteStringChoices {
	targets := roles
	if searchTerm != "" {
		ranks := fuzzy.RankFindFold(searchTerm, roles)
		sort.Sort(ranks)
		targets = make([]string, 0, len(ranks))
		for _, r := range ranks {
			targets = append(targets, r.Target)
		}
	}
	if len(targets) > maxChoices {
		targets = targets[:maxChoices]
	}

	choices := make(api.AutocompleteStringChoices, 0, len(targets))
	for _, t := range targets {
		choices = append(choices, discord.StringChoice{
			Name:  t,
			Value: t,
		})
	}
	return choices
}
