package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:05", "12:30", "23:59"}
	for _, s := range valid {
		got, err := NewTimeOfDay(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.String())
	}

	invalid := []string{"", "9:05", "24:00", "12:60", "12:5", "noon", "12-30", "12:30:00"}
	for _, s := range invalid {
		_, err := NewTimeOfDay(s)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, s)
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	assert.True(t, TimeOfDay("08:00").Before("14:00"))
	assert.True(t, TimeOfDay("09:59").Before("10:00"))
	assert.False(t, TimeOfDay("14:00").Before("14:00"))
}

func TestTimeOfDayMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeOfDay("00:00").Minutes())
	assert.Equal(t, 9*60+15, TimeOfDay("09:15").Minutes())
	assert.Equal(t, 23*60+59, TimeOfDay("23:59").Minutes())
	assert.Equal(t, 0, TimeOfDay("").Minutes())
}

func TestTimeOfDayJSON(t *testing.T) {
	var got TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"09:30"`), &got))
	assert.Equal(t, TimeOfDay("09:30"), got)

	// Empty decodes as unset.
	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.True(t, got.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"9:30"`), &got))

	raw, err := json.Marshal(TimeOfDay("18:45"))
	require.NoError(t, err)
	assert.Equal(t, `"18:45"`, string(raw))
}
