package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"06:00", TimeOfDay(360), false},
		{"6:00", TimeOfDay(360), false},
		{"00:00", TimeOfDay(0), false},
		{"23:59", TimeOfDay(1439), false},
		{" 08:30 ", TimeOfDay(510), false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
		{"-1:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "06:05", TimeOfDay(365).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestTimeOfDayAddMinutesWrapsPastMidnight(t *testing.T) {
	start, err := ParseTimeOfDay("23:50")
	require.NoError(t, err)

	assert.Equal(t, "00:15", start.AddMinutes(25).String())
	assert.Equal(t, "23:50", start.AddMinutes(0).String())
	assert.Equal(t, "23:40", start.AddMinutes(-10).String())
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	original := TimeOfDay(485)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"08:05"`, string(data))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)

	var invalid TimeOfDay
	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &invalid))
}
