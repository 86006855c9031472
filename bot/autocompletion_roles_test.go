package bot

import (
	"testing"

	"github.com/honkbot/honkbot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceNames(t *testing.T, searchTerm string, roles []string) []string {
	t.Helper()
	choices := roleChoices(searchTerm, roles)
	names := make([]string, 0, len(choices))
	for _, c := range choices {
		names = append(names, c.Name)
	}
	return names
}

func TestRoleChoices(t *testing.T) {
	t.Parallel()
	roles := config.DefaultJoinableRoles

	assert.Equal(t, roles, choiceNames(t, "", roles))

	names := choiceNames(t, "can", roles)
	require.NotEmpty(t, names)
	assert.Equal(t, "Canada", names[0])

	names = choiceNames(t, "ny", roles)
	require.NotEmpty(t, names)
	assert.Equal(t, "NY", names[0])

	assert.Empty(t, choiceNames(t, "zzz", roles))
}

func TestJoinableRole(t *testing.T) {
	t.Parallel()
	b := &Bot{joinableRoles: config.DefaultJoinableRoles}

	name, err := b.joinableRole(" canada ")
	require.NoError(t, err)
	assert.Equal(t, "Canada", name)

	name, err = b.joinableRole("ex-oh")
	require.NoError(t, err)
	assert.Equal(t, "EX-OH", name)

	_, err = b.joinableRole("moderator")
	assert.ErrorIs(t, err, errNotJoinable)
}
