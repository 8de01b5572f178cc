package reference

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ngs.io/solar-api/internal/domain"
)

func TestCompare_FullYear(t *testing.T) {
	locs := []domain.Location{
		{LatitudeDeg: 45},
		{LatitudeDeg: -33.92, LongitudeDeg: 18.42},
	}
	start := domain.CalendarDay{Year: 2024, Month: time.January, Day: 1}
	end := domain.CalendarDay{Year: 2024, Month: time.December, Day: 31}

	for _, loc := range locs {
		days, sum, err := Compare(loc, start, end)
		require.NoError(t, err)
		require.Len(t, days, 366)
		assert.Equal(t, 366, sum.Days)
		assert.Zero(t, sum.Skipped)

		assert.Less(t, sum.Sunrise.RMSE, 4.0, "sunrise RMSE (min) at %+v", loc)
		assert.Less(t, sum.Sunset.RMSE, 4.0, "sunset RMSE (min) at %+v", loc)
		assert.Less(t, sum.Sunrise.Max, 6.0, "sunrise max diff (min) at %+v", loc)
		assert.Less(t, sum.Sunset.Max, 6.0, "sunset max diff (min) at %+v", loc)
		// The truncated Fourier series for declination drifts up to about
		// 0.35° from the apparent declination, worst near the October equinox.
		assert.Less(t, sum.Declination.Max, 0.4, "declination max diff (deg) at %+v", loc)
		assert.Less(t, sum.Elevation.Max, 0.5, "noon elevation max diff (deg) at %+v", loc)
	}
}

func TestCompare_PolarDaysSkipped(t *testing.T) {
	loc := domain.Location{LatitudeDeg: 78.22, LongitudeDeg: 15.65}
	day := domain.CalendarDay{Year: 2024, Month: time.June, Day: 21}
	days, sum, err := Compare(loc, day, day.Next())
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 2, sum.Skipped)
	assert.True(t, days[0].Skipped)
	assert.Zero(t, sum.Sunrise.N)
	// Positions are still compared.
	assert.Equal(t, 2, sum.Declination.N)
}

func TestCompare_InvalidRange(t *testing.T) {
	start := domain.CalendarDay{Year: 2024, Month: time.March, Day: 2}
	_, _, err := Compare(domain.Location{}, start, domain.CalendarDay{Year: 2024, Month: time.March, Day: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApparentDeclination_Solstice(t *testing.T) {
	dec := ApparentDeclination(time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC))
	assert.InDelta(t, 23.44, dec, 0.01)
}
