package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := domain.NewDate(2024, time.February, 29)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(data))

	var back domain.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}

func TestDate_ParseRejectsGarbage(t *testing.T) {
	_, err := domain.ParseDate("15.03.2024")
	assert.Error(t, err)

	_, err = domain.ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestDate_DaysSince(t *testing.T) {
	a := domain.NewDate(2024, time.January, 1)
	b := domain.NewDate(2024, time.February, 15)
	assert.Equal(t, 45, b.DaysSince(a))
	assert.Equal(t, -45, a.DaysSince(b))
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.February, "2024-02-29"},
		{2023, time.February, "2023-02-28"},
		{2024, time.April, "2024-04-30"},
		{2024, time.December, "2024-12-31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.LastDayOfMonth(tt.year, tt.month).String())
	}
}
