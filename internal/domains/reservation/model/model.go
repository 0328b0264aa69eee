package model

import (
	"fmt"
	"time"

	"fieldbook/shared/constant"
	"fieldbook/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldFieldID     = "field_id"
	FieldDate        = "date"
	FieldStartMinute = "start_minute"
	FieldEndMinute   = "end_minute"
	FieldUserID      = "user_id"
)

// Reservation holds one admitted slot. Times of day are stored as minutes
// since midnight so the overlap arithmetic never touches string or timestamp
// representations; "HH:MM" exists only at the API boundary.
type Reservation struct {
	ID          string    `db:"id"`
	FieldID     string    `db:"field_id"`
	Date        time.Time `db:"date"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	UserID      string    `db:"user_id"`
	model.Metadata
}

// Overlaps reports whether the half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint do not
// overlap, which is what lets back-to-back bookings coexist.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// ConflictsWith reports whether the candidate [startMinute, endMinute) slot
// intersects this reservation's slot.
func (r *Reservation) ConflictsWith(startMinute, endMinute int) bool {
	return Overlaps(r.StartMinute, r.EndMinute, startMinute, endMinute)
}

// ParseTimeOfDay converts an "HH:MM" wall-clock string to minutes since midnight.
func ParseTimeOfDay(value string) (int, error) {
	t, err := time.Parse(constant.TimeOfDayFormat, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}

	return t.Hour()*constant.MinutesPerHour + t.Minute(), nil
}

// FormatTimeOfDay converts minutes since midnight back to "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/constant.MinutesPerHour, minutes%constant.MinutesPerHour)
}
