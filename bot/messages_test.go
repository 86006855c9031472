package bot

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHonkReplies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"HONK!"}, honkReplies("goose", "the goose goes HONK"))
	assert.Equal(t, []string{"beep"}, honkReplies("Skeeter", "honk honk"))
	assert.Equal(t, []string{"whats dygma"}, honkReplies("goose", "my Dygma keyboard"))
	assert.Equal(t, []string{"HONK!", "whats dygma"}, honkReplies("goose", "honk dygma"))
	assert.Empty(t, honkReplies("goose", "quack"))
}

func TestPrefixCommand(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	user := discord.UserID(42)

	_, ok := b.prefixCommand(t.Context(), user, "hello there")
	assert.False(t, ok)

	_, ok = b.prefixCommand(t.Context(), user, "!unknown")
	assert.False(t, ok)

	_, ok = b.prefixCommand(t.Context(), user, "")
	assert.False(t, ok)

	reply, ok := b.prefixCommand(t.Context(), user, "!DDRRIVAL create goose 1234-5678 chuu")
	require.True(t, ok)
	assert.Equal(t, "Created DDR Rival GOOSE!", reply)

	reply, ok = b.prefixCommand(t.Context(), user, "!ddrrival search name=goose")
	require.True(t, ok)
	assert.Equal(t, "```\n42\tGOOSE\t1234-5678\tCHUU\n```", reply)

	reply, ok = b.prefixCommand(t.Context(), user, "!iidxrival search name=goose")
	require.True(t, ok)
	assert.Equal(t, "No rivals found with that filter!", reply)
}

func TestHelpMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Commands are: !eamuse, !smxjacket, !ddrrival, !iidxrival, !help\nUse `!help <command>` for more information",
		helpMessage(nil),
	)
	assert.Equal(t, `No command called "honk" found.`, helpMessage([]string{"honk"}))
	assert.Equal(t, "```\n!eamuse\n\nGets e-amusement maintenance time.\n```", helpMessage([]string{"!eamuse"}))

	ddr := helpMessage([]string{"ddrrival"})
	assert.Contains(t, ddr, "!ddrrival create SPOOKY 1234-5678 8dan")
	assert.Contains(t, ddr, "DDR-CODE")

	iidx := helpMessage([]string{"iidxrival"})
	assert.Contains(t, iidx, "!iidxrival delete")
}
