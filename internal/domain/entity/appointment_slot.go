package entity

import (
	"strings"
	"time"

	"go-medical-appointment/pkg/apperror"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"

	slotLayoutSeconds = "15:04:05"
)

// AppointmentSlots are the permitted start times of a business day, in
// order. 12:00 is the lunch break.
var AppointmentSlots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00",
}

var (
	ErrInvalidDate = apperror.InvalidRequest("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime = apperror.InvalidRequest("invalid time, expected HH:MM")
)

// ParseDate parses a YYYY-MM-DD calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperror.Wrap(ErrInvalidDate, "%q", s)
	}
	return d, nil
}

// ParseSlot parses HH:MM or HH:MM:SS. Whole minutes come back as HH:MM;
// a value with non-zero seconds keeps its HH:MM:SS form and so never
// matches a slot. The result is not checked against AppointmentSlots.
func ParseSlot(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(SlotLayout, s); err == nil {
		return t.Format(SlotLayout), nil
	}
	if t, err := time.Parse(slotLayoutSeconds, s); err == nil {
		if t.Second() != 0 {
			return t.Format(slotLayoutSeconds), nil
		}
		return t.Format(SlotLayout), nil
	}
	return "", apperror.Wrap(ErrInvalidTime, "%q", s)
}

// IsBusinessDay reports whether d falls Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// IsValidSlot reports whether slot (HH:MM) is one of AppointmentSlots.
func IsValidSlot(slot string) bool {
	for _, s := range AppointmentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// DateOnly drops the clock part of t, keeping its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
