package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), Location("").String())
	assert.Equal(t, Default(), Location("Not/AZone").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime("UTC", "2026-03-02", "09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, 30, ts.Minute())
	assert.Equal(t, "UTC", ts.Location().String())

	_, err = ParseDateTime("UTC", "2026-03-02", "9h30")
	assert.Error(t, err)
}
