package resource

import "time"

// BusyInterval is an existing active booking's [start,end) interval,
// projected into the schedule computation without a dependency on the
// booking aggregate.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// TimeSlot is one bookable cell of a day grid. Derived data: recomputed
// on every availability query, never cached across requests.
type TimeSlot struct {
	Start       time.Time
	End         time.Time
	IsAvailable bool
}

// DaySchedule is the resolved availability of a resource for one
// calendar day.
type DaySchedule struct {
	Date  time.Time
	Open  bool
	Hours HoursSpec
	Slots []TimeSlot
}

// ScheduleFor partitions a calendar day into interval-width slots and
// flags each against the given active bookings. Pure and side-effect
// free; day must already be anchored in the booking time zone.
//
// An exception closing the day short-circuits to an empty, closed
// schedule. Malformed hour strings return ErrMalformedHours so callers
// can fail closed. No partial trailing slot is emitted past closing time.
func (r *Resource) ScheduleFor(day time.Time, busy []BusyInterval) (DaySchedule, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	hours, open := r.hours.ForDate(day)
	if !open {
		return DaySchedule{Date: day, Open: false}, nil
	}

	windowStart, windowEnd, err := resolveWindow(hours, day)
	if err != nil {
		return DaySchedule{}, err
	}

	interval := time.Duration(r.intervalMin) * time.Minute
	var slots []TimeSlot
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(interval) {
		slotEnd := cursor.Add(interval)
		if slotEnd.After(windowEnd) {
			break
		}
		slots = append(slots, TimeSlot{
			Start:       cursor,
			End:         slotEnd,
			IsAvailable: !overlapsAny(cursor, slotEnd, busy),
		})
	}

	return DaySchedule{
		Date:  day,
		Open:  true,
		Hours: hours,
		Slots: slots,
	}, nil
}

func resolveWindow(hours HoursSpec, day time.Time) (time.Time, time.Time, error) {
	start, err := ParseClockTime(hours.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClockTime(hours.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.On(day), end.On(day), nil
}

// Half-open interval overlap: touching endpoints do not collide.
func overlapsAny(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.Start.Before(end) && b.End.After(start) {
			return true
		}
	}
	return false
}
