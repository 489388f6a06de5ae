package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAge(t *testing.T) {
	birth := time.Date(1960, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"day before birthday", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), 64},
		{"on birthday", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 65},
		{"earlier month", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 64},
		{"later month", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(birth, tt.at))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1962-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1962, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/04/1962")
	assert.Error(t, err)
}

func TestStartingAge(t *testing.T) {
	birth := time.Date(1960, 6, 15, 0, 0, 0, 0, time.UTC)

	age, err := StartingAge(birth, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 66, age)

	_, err = StartingAge(birth, time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)

	age, err = StartingAge(time.Now().UTC().AddDate(-70, 0, -1), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 70, age)
}
