package options

import (
	"encoding/json"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringOptions(t *testing.T, values map[string]string) discord.CommandInteractionOptions {
	t.Helper()
	opts := make(discord.CommandInteractionOptions, 0, len(values))
	for name, value := range values {
		raw, err := json.Marshal(value)
		require.NoError(t, err)
		opts = append(opts, discord.CommandInteractionOption{
			Type:  discord.StringOptionType,
			Name:  name,
			Value: raw,
		})
	}
	return opts
}

func TestString(t *testing.T) {
	t.Parallel()
	opts := stringOptions(t, map[string]string{
		"role":  "  NY ",
		"empty": "   ",
	})

	s, err := String("role", opts)
	require.NoError(t, err)
	assert.Equal(t, "NY", s)

	_, err = String("empty", opts)
	assert.Error(t, err)

	_, err = String("missing", opts)
	assert.Error(t, err)
}

func TestStringOption(t *testing.T) {
	t.Parallel()
	opts := stringOptions(t, map[string]string{
		"input": "honk",
	})

	assert.Equal(t, "honk", StringOption("input", opts, "test"))
	assert.Equal(t, "test", StringOption("missing", opts, "test"))
}
