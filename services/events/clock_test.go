package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"9:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"1230", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration(t *testing.T) {
	d, err := Duration("09:15", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 105, d)

	_, err = Duration("11:00", "11:00")
	assert.Error(t, err)
	_, err = Duration("11:00", "10:00")
	assert.Error(t, err)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-01"))
	assert.False(t, ValidDate("2025-02-30"))
	assert.False(t, ValidDate("01/06/2025"))
}
