//go:build unit

package resource_test

import (
	"testing"
	"time"

	"campus-booking/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "plain time", input: "08:30", want: "08:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "single digit hour", input: "8:05", want: "08:05"},
		{name: "hour out of range", input: "24:00", errIs: resource.ErrMalformedHours},
		{name: "minute out of range", input: "10:60", errIs: resource.ErrMalformedHours},
		{name: "negative hour", input: "-1:00", errIs: resource.ErrMalformedHours},
		{name: "garbage", input: "noon", errIs: resource.ErrMalformedHours},
		{name: "empty", input: "", errIs: resource.ErrMalformedHours},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ct, err := resource.ParseClockTime(c.input)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, ct.String())
		})
	}
}

func TestOperatingHoursForDate(t *testing.T) {
	hours := resource.OperatingHours{
		Weekdays: resource.HoursSpec{Start: "08:00", End: "20:00"},
		Weekends: resource.HoursSpec{Start: "10:00", End: "16:00"},
	}

	t.Run("weekday and weekend classification", func(t *testing.T) {
		spec, open := hours.ForDate(weekday)
		require.True(t, open)
		assert.Equal(t, "08:00", spec.Start)

		spec, open = hours.ForDate(weekend)
		require.True(t, open)
		assert.Equal(t, "10:00", spec.Start)
	})

	t.Run("closed exception wins over weekday hours", func(t *testing.T) {
		h := hours
		h.Exceptions = []resource.DateException{{Date: weekday, Available: false}}

		_, open := h.ForDate(weekday)
		assert.False(t, open)
	})

	t.Run("available exception without custom hours falls back", func(t *testing.T) {
		h := hours
		h.Exceptions = []resource.DateException{{Date: weekday, Available: true}}

		spec, open := h.ForDate(weekday)
		require.True(t, open)
		assert.Equal(t, "08:00", spec.Start)
	})

	t.Run("exception on another date does not apply", func(t *testing.T) {
		h := hours
		h.Exceptions = []resource.DateException{{Date: weekday.AddDate(0, 0, 1), Available: false}}

		_, open := h.ForDate(weekday)
		assert.True(t, open)
	})

	t.Run("exception matches by calendar date in the day's zone", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		nyDay := time.Date(2026, 3, 10, 0, 0, 0, 0, ny)

		h := hours
		// Noon UTC on March 10 is still March 10 in New York.
		h.Exceptions = []resource.DateException{{
			Date:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Available: false,
		}}
		_, open := h.ForDate(nyDay)
		assert.False(t, open)

		// Midnight UTC on March 10 is March 9 in New York, so it does not match.
		h.Exceptions = []resource.DateException{{Date: weekday, Available: false}}
		_, open = h.ForDate(nyDay)
		assert.True(t, open)
	})
}

func TestRestrictions(t *testing.T) {
	t.Run("empty restrictions allow everyone", func(t *testing.T) {
		r := resource.Restrictions{}
		assert.True(t, r.AllowsRole("student"))
		assert.True(t, r.AllowsDepartment("Physics"))
	})

	t.Run("role membership", func(t *testing.T) {
		r := resource.Restrictions{UserRoles: []string{"faculty", "admin"}}
		assert.True(t, r.AllowsRole("faculty"))
		assert.False(t, r.AllowsRole("student"))
	})

	t.Run("department membership", func(t *testing.T) {
		r := resource.Restrictions{Departments: []string{"Chemistry"}}
		assert.True(t, r.AllowsDepartment("Chemistry"))
		assert.False(t, r.AllowsDepartment("History"))
		assert.False(t, r.AllowsDepartment(""))
	})

	t.Run("unknown role strings are legal set members", func(t *testing.T) {
		r := resource.Restrictions{UserRoles: []string{"visiting_scholar"}}
		assert.True(t, r.AllowsRole("visiting_scholar"))
		assert.False(t, r.AllowsRole("student"))
	})
}
