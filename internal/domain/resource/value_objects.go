package resource

import (
	"errors"
	"fmt"
	"time"
)

var ErrMalformedHours = errors.New("malformed operating hours")

// HoursSpec is a pair of "HH:MM" 24-hour wall-clock strings as stored in
// the resource policy. The strings are parsed lazily at schedule time so
// that bad data fails closed instead of poisoning every policy read.
type HoursSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ClockTime is a parsed wall-clock time of day.
type ClockTime struct {
	hour   int
	minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, ErrMalformedHours
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, ErrMalformedHours
	}
	return ClockTime{hour: h, minute: m}, nil
}

func (t ClockTime) Hour() int   { return t.hour }
func (t ClockTime) Minute() int { return t.minute }

// On anchors the wall-clock time onto the given calendar day in that
// day's location.
func (t ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.hour, t.minute, 0, 0, day.Location())
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// DateException overrides the default hours for a single calendar date:
// either fully closed (Available=false) or open with optional custom hours.
type DateException struct {
	Date        time.Time  `json:"date"`
	Available   bool       `json:"available"`
	CustomHours *HoursSpec `json:"customHours,omitempty"`
}

// Matches reports whether the exception applies to the given calendar
// day. Comparison is by date components in the day's location.
func (e DateException) Matches(day time.Time) bool {
	d := e.Date.In(day.Location())
	return d.Year() == day.Year() && d.Month() == day.Month() && d.Day() == day.Day()
}

// OperatingHours is the resource's weekly policy plus dated exceptions.
type OperatingHours struct {
	Weekdays   HoursSpec       `json:"weekdays"`
	Weekends   HoursSpec       `json:"weekends"`
	Exceptions []DateException `json:"exceptions,omitempty"`
}

// ForDate resolves the hours applicable to a calendar day. The second
// return value is false when the day is fully closed by an exception.
func (h OperatingHours) ForDate(day time.Time) (HoursSpec, bool) {
	for _, exc := range h.Exceptions {
		if !exc.Matches(day) {
			continue
		}
		if !exc.Available {
			return HoursSpec{}, false
		}
		if exc.CustomHours != nil {
			return *exc.CustomHours, true
		}
		break
	}

	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return h.Weekends, true
	default:
		return h.Weekdays, true
	}
}

// Restrictions limit who may book a resource. Empty slices mean
// unrestricted: role and department are open string sets, not closed
// enums, so membership is a plain set test.
type Restrictions struct {
	UserRoles   []string `json:"userRoles,omitempty"`
	Departments []string `json:"departments,omitempty"`
}

func (r Restrictions) AllowsRole(role string) bool {
	if len(r.UserRoles) == 0 {
		return true
	}
	for _, allowed := range r.UserRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

func (r Restrictions) AllowsDepartment(department string) bool {
	if len(r.Departments) == 0 {
		return true
	}
	for _, allowed := range r.Departments {
		if allowed == department {
			return true
		}
	}
	return false
}

// Location is the physical placement of a resource on campus.
type Location struct {
	Building   string `json:"building"`
	Floor      int    `json:"floor"`
	RoomNumber string `json:"roomNumber"`
}
