package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectScale(t *testing.T) {
	t.Parallel()

	table := []struct {
		interval time.Duration
		factor   time.Duration
		scale    time.Duration
	}{
		{720 * time.Hour, 1, 720 * time.Hour},
		{1440 * time.Hour, 1, 720 * time.Hour},
		{168 * time.Hour, 1, 168 * time.Hour},
		{48 * time.Hour, 1, 24 * time.Hour},
		{24 * time.Hour, 1, 24 * time.Hour},
		{12 * time.Hour, 1, 12 * time.Hour},
		{18 * time.Hour, 1, 6 * time.Hour},
		{24 * time.Hour, 2, 12 * time.Hour},
	}

	for _, tc := range table {
		s, ok := selectScale(tc.interval, tc.factor)
		require.True(t, ok, tc.interval.String())
		assert.Equal(t, tc.scale, s.Scale, tc.interval.String())
	}

	for _, interval := range []time.Duration{time.Hour, 30 * time.Minute, 5 * time.Hour} {
		_, ok := selectScale(interval, 1)
		assert.False(t, ok, interval.String())
		assert.NotNil(t, SelectJobDefinition(interval))
	}
}
