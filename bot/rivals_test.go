package bot

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/honkbot/honkbot/internal/rival"
	"github.com/honkbot/honkbot/migrations"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	sqlDB, err := sql.Open(rival.DriverName, ":memory:")
	require.NoError(t, err)
	// every connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	_, err = migrations.Migrate(t.Context(), sqlDB)
	require.NoError(t, err)

	db := sqlx.NewDb(sqlDB, rival.DriverName)
	return &Bot{
		ctx:  t.Context(),
		db:   db,
		ddr:  rival.NewStore(db, rival.DDR),
		iidx: rival.NewStore(db, rival.IIDX),
	}
}

func rivalCmd(t *testing.T, b *Bot, store *rival.Store, userID, line string) string {
	t.Helper()
	return b.rivalCommand(t.Context(), store, userID, strings.Fields(line))
}

func TestRivalCommandLifecycle(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)

	assert.Equal(t, "Created DDR Rival SPOOKY!", rivalCmd(t, b, b.ddr, "1", "create spooky 1234-5678 8dan"))
	assert.Equal(t,
		"An entry already exists! Use `!ddrrival update` to change it",
		rivalCmd(t, b, b.ddr, "1", "create other 1111-1111"),
	)
	assert.Equal(t, "Created DDR Rival GOOSE!", rivalCmd(t, b, b.ddr, "2", "create goose 2222-2222"))

	assert.Equal(t, "```\n1\tSPOOKY\t1234-5678\t8DAN\n```", rivalCmd(t, b, b.ddr, "3", "search name=Spooky"))
	assert.Equal(t, "No rivals found with that filter!", rivalCmd(t, b, b.ddr, "3", "search code=9999-9999"))

	assert.Equal(t, "Entry has been updated!", rivalCmd(t, b, b.ddr, "1", "update rank=kai"))
	assert.Equal(t, "```\n1\tSPOOKY\t1234-5678\tKAI\n```", rivalCmd(t, b, b.ddr, "3", "search rank=KAI"))

	assert.Equal(t, "Entry has been deleted!", rivalCmd(t, b, b.ddr, "1", "delete"))
	assert.Equal(t,
		"Your entry must be created first. See `!help ddrrival` for more information",
		rivalCmd(t, b, b.ddr, "1", "delete"),
	)
	assert.Equal(t,
		"Your entry must be created first. See `!help ddrrival` for more information",
		rivalCmd(t, b, b.ddr, "1", "update name=honk"),
	)

	// games are stored separately
	assert.Equal(t, "No rivals found with that filter!", rivalCmd(t, b, b.iidx, "3", "search name=GOOSE"))
}

func TestRivalCommandValidation(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)

	tests := []struct {
		store *rival.Store
		line  string
		want  string
	}{
		{b.ddr, "", "Bad action! Use `!help ddrrival` for more information"},
		{b.ddr, "honk", "Bad action! Use `!help ddrrival` for more information"},
		{b.ddr, "create spooky", "Missing required arguments! Use `!help ddrrival` for more information"},
		{b.ddr, "create toolongname 1234-5678", "Dancer name must be at most 8 characters!"},
		{b.iidx, "create sevenx 1234-5678", "Created IIDX Rival SEVENX!"},
		{b.iidx, "create sevenxx 1234-5678", "DJ name must be at most 6 characters!"},
		{b.ddr, "create spooky 12345678", "DDR ID must follow the following format: `####-####`"},
		{b.ddr, "create spooky 1234-5678 11dan", "Rank is not valid! Options are #dan, #kyu, chuu, or kai"},
		{b.ddr, "search", "Missing filters! Use `!help ddrrival` for more information"},
		{b.ddr, "search name", "Invalid filters! Use `!help ddrrival` for more information"},
		{b.ddr, "search a=b=c", "Invalid filters! Use `!help ddrrival` for more information"},
		{b.ddr, "search user_id=1", "Invalid filter! Use `!help ddrrival` for more information"},
		{b.iidx, "update", "Missing filters! Use `!help iidxrival` for more information"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, rivalCmd(t, b, tt.store, "1", tt.line))
		})
	}
}

func TestRivalCommandUpdateValidation(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)

	require.Equal(t, "Created IIDX Rival DJ!", rivalCmd(t, b, b.iidx, "1", "create dj 1234-5678"))
	assert.Equal(t, "IIDX ID must follow the following format: `####-####`", rivalCmd(t, b, b.iidx, "1", "update code=1"))
	assert.Equal(t, "Entry has been updated!", rivalCmd(t, b, b.iidx, "1", "update code=8888-8888 name=dj2"))
	assert.Equal(t, "```\n1\tDJ2\t8888-8888\t\n```", rivalCmd(t, b, b.iidx, "2", "search code=8888-8888"))
}
