package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", d.String())

	_, err = ParseDate("31/12/2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}

func TestDateISOWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-06-02", 1}, // Monday
		{"2025-06-04", 3}, // Wednesday
		{"2025-06-07", 6}, // Saturday
		{"2025-06-08", 7}, // Sunday
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.ISOWeekday(), "weekday of %s", tt.date)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	original, err := ParseDate("2025-07-14")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"2025-07-14"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
