// File: services/scheduling/generator.go
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"asdcare/models"
)

// ErrInvalidWindow is returned when a window cannot be expanded at all.
var ErrInvalidWindow = errors.New("invalid slot window")

// ClockTime is a local time of day in minutes from midnight (e.g. 540 for 09:00).
type ClockTime int

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidWindow, s)
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidWindow, s)
	}
	return ClockTime(h*60 + m), nil
}

// String renders the clock time as "HH:MM". Values past midnight wrap.
func (c ClockTime) String() string {
	m := int(c) % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Window is a declared working window: sessions of Interval minutes separated
// by Break minutes between Start and End.
type Window struct {
	Start    ClockTime
	End      ClockTime
	Interval int
	Break    int
}

func (w Window) validate() error {
	if w.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidWindow, w.Interval)
	}
	if w.Break < 0 {
		return fmt.Errorf("%w: break must not be negative, got %d", ErrInvalidWindow, w.Break)
	}
	return nil
}

// Count is the number of whole intervals that fit in the window:
// floor((end - start + break) / (interval + break)), or 0 for an empty window.
func (w Window) Count() int {
	if w.validate() != nil || w.Start >= w.End {
		return 0
	}
	return (int(w.End-w.Start) + w.Break) / (w.Interval + w.Break)
}

// Intervals expands the window into its bookable intervals in start order.
// Each interval is exactly Interval minutes long, consecutive intervals are
// Break minutes apart and no interval ends after End. Leftover time shorter
// than an interval is dropped.
func (w Window) Intervals() ([]models.Interval, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	n := w.Count()
	out := make([]models.Interval, 0, n)
	step := ClockTime(w.Interval + w.Break)
	for cursor := w.Start; cursor+ClockTime(w.Interval) <= w.End; cursor += step {
		out = append(out, models.Interval{
			Start: cursor.String(),
			End:   (cursor + ClockTime(w.Interval)).String(),
		})
	}
	return out, nil
}

// GenerateIntervals parses the clock strings and expands the window.
func GenerateIntervals(startTime, endTime string, intervalMinutes, breakTimeMinutes int) ([]models.Interval, error) {
	w, err := NewWindow(startTime, endTime, intervalMinutes, breakTimeMinutes)
	if err != nil {
		return nil, err
	}
	return w.Intervals()
}

// NewWindow parses the "HH:MM" bounds and validates the lengths. An end at
// or before the start is valid and yields no intervals.
func NewWindow(startTime, endTime string, intervalMinutes, breakTimeMinutes int) (Window, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: start, End: end, Interval: intervalMinutes, Break: breakTimeMinutes}
	return w, w.validate()
}

// WindowOf returns the window declared by a slot.
func WindowOf(slot models.Slot) (Window, error) {
	return NewWindow(slot.StartTime, slot.EndTime, slot.IntervalMinutes, slot.BreakTimeMinutes)
}

// Expand returns the bookable intervals of a slot.
func Expand(slot models.Slot) ([]models.Interval, error) {
	w, err := WindowOf(slot)
	if err != nil {
		return nil, err
	}
	return w.Intervals()
}
