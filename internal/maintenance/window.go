package maintenance

import (
	"errors"
	"fmt"
	"time"
)

const (
	WindowNormal   = "normal"
	WindowExtended = "extended"
	WindowUS       = "us"
)

var (
	ErrWindowNotFound = errors.New("maintenance window not found")
	ErrInvalidWindow  = errors.New("invalid maintenance window")
)

type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour must be between 0 and 23: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute must be between 0 and 59: %d", minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// On combines the calendar date of d with the time of day in loc.
func (t TimeOfDay) On(d time.Time, loc *time.Location) time.Time {
	d = d.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Window is a recurring daily interval anchored to Location.
// Start must not be after End, windows never wrap past midnight.
type Window struct {
	Name     string
	Start    TimeOfDay
	End      TimeOfDay
	Location *time.Location
}

func NewWindow(name string, start, end TimeOfDay, loc *time.Location) (Window, error) {
	w := Window{
		Name:     name,
		Start:    start,
		End:      end,
		Location: loc,
	}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w Window) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidWindow)
	}
	if w.Location == nil {
		return fmt.Errorf("%w: %q has no anchor location", ErrInvalidWindow, w.Name)
	}
	if w.Start.minutes() > w.End.minutes() {
		return fmt.Errorf("%w: %q starts at %s after it ends at %s", ErrInvalidWindow, w.Name, w.Start, w.End)
	}
	return nil
}

func (w Window) String() string {
	return fmt.Sprintf("%s %s-%s %s", w.Name, w.Start, w.End, w.Location)
}

type Schedule []Window

// DefaultSchedule returns the e-amusement maintenance windows, all anchored to UTC.
func DefaultSchedule() Schedule {
	return Schedule{
		{Name: WindowNormal, Start: TimeOfDay{20, 0}, End: TimeOfDay{22, 0}, Location: time.UTC},
		{Name: WindowExtended, Start: TimeOfDay{17, 0}, End: TimeOfDay{22, 0}, Location: time.UTC},
		{Name: WindowUS, Start: TimeOfDay{12, 0}, End: TimeOfDay{17, 0}, Location: time.UTC},
	}
}

func (s Schedule) Lookup(name string) (Window, error) {
	for _, w := range s {
		if w.Name == name {
			return w, nil
		}
	}
	return Window{}, fmt.Errorf("%w: %q", ErrWindowNotFound, name)
}

func (s Schedule) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, w := range s {
		if err := w.Validate(); err != nil {
			return err
		}
		if _, ok := seen[w.Name]; ok {
			return fmt.Errorf("%w: duplicate window name %q", ErrInvalidWindow, w.Name)
		}
		seen[w.Name] = struct{}{}
	}
	return nil
}
