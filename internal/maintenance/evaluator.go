package maintenance

import (
	"errors"
	"fmt"
	"time"

	_ "time/tzdata" // named zones must resolve even on hosts without a zoneinfo database
)

const (
	ZoneJapan   = "Asia/Tokyo"
	ZoneEastern = "America/New_York"
)

// Weekday indices used by this package: Monday = 0 through Sunday = 6.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var (
	ErrInvalidInstant = errors.New("invalid instant")
)

// Weekday returns the weekday of t with Monday = 0.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Config configures an Evaluator. Nil zones are loaded by name.
type Config struct {
	Schedule Schedule
	Japan    *time.Location
	Eastern  *time.Location
	// Report is the zone used to render begin and end times. Defaults to Eastern.
	Report *time.Location

	// SkipFridaySaturday reports the other servers as unscheduled on Fridays
	// and Saturdays in US Eastern time on non extended days.
	SkipFridaySaturday bool
}

// Status describes one window on the current day.
// Scheduled is false when there is no maintenance today, Begin and End are zero then.
type Status struct {
	Window    string
	Scheduled bool
	Active    bool
	Begin     time.Time
	End       time.Time
}

// Span renders begin and end as HH:MM-HH:MM in the report zone.
func (s Status) Span() string {
	if !s.Scheduled {
		return ""
	}
	return s.Begin.Format("15:04") + "-" + s.End.Format("15:04")
}

// Report is the answer to a maintenance query. Primary is the US window which
// is only scheduled on extended days, Other is the japanese window.
type Report struct {
	Primary  Status
	Other    Status
	Extended bool
}

// Evaluator is immutable after construction and safe for concurrent use.
type Evaluator struct {
	schedule           Schedule
	japan              *time.Location
	eastern            *time.Location
	report             *time.Location
	skipFridaySaturday bool
}

// NewEvaluator fails when the schedule is invalid or a zone cannot be loaded.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	var err error
	japan := cfg.Japan
	if japan == nil {
		japan, err = time.LoadLocation(ZoneJapan)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ZoneJapan, err)
		}
	}

	eastern := cfg.Eastern
	if eastern == nil {
		eastern, err = time.LoadLocation(ZoneEastern)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ZoneEastern, err)
		}
	}

	report := cfg.Report
	if report == nil {
		report = eastern
	}

	err = cfg.Schedule.Validate()
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		schedule:           cfg.Schedule,
		japan:              japan,
		eastern:            eastern,
		report:             report,
		skipFridaySaturday: cfg.SkipFridaySaturday,
	}, nil
}

// IsExtendedPeriod reports whether now is the US Eastern Monday that
// corresponds to the third Tuesday of the month in Japan. This is the case
// when Japan already is on that Tuesday or is still on the Monday before it.
func (e *Evaluator) IsExtendedPeriod(now time.Time) bool {
	var (
		inJapan       = now.In(e.japan)
		tomorrowJapan = inJapan.AddDate(0, 0, 1)
		inEastern     = now.In(e.eastern)
	)

	if Weekday(inEastern) != Monday {
		return false
	}

	return isThirdTuesday(inJapan) || isThirdTuesday(tomorrowJapan)
}

func isThirdTuesday(t time.Time) bool {
	return Weekday(t) == Tuesday && 15 <= t.Day() && t.Day() <= 21
}

// DisplayWindow checks whether now lies within w on the current date of w's
// anchor zone. Both bounds are inclusive.
func (e *Evaluator) DisplayWindow(now time.Time, w Window, report *time.Location) Status {
	if report == nil {
		report = e.report
	}
	var (
		begin = w.Start.On(now, w.Location)
		end   = w.End.On(now, w.Location)
	)

	return Status{
		Window:    w.Name,
		Scheduled: true,
		Active:    !now.Before(begin) && !now.After(end),
		Begin:     begin.In(report),
		End:       end.In(report),
	}
}

// Evaluate either returns a complete report or an error, never a partial one.
func (e *Evaluator) Evaluate(now time.Time) (Report, error) {
	if now.IsZero() {
		return Report{}, fmt.Errorf("%w: zero time", ErrInvalidInstant)
	}

	if e.IsExtendedPeriod(now) {
		us, err := e.schedule.Lookup(WindowUS)
		if err != nil {
			return Report{}, err
		}
		extended, err := e.schedule.Lookup(WindowExtended)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Primary:  e.DisplayWindow(now, us, e.report),
			Other:    e.DisplayWindow(now, extended, e.report),
			Extended: true,
		}, nil
	}

	normal, err := e.schedule.Lookup(WindowNormal)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Primary: Status{Window: WindowUS},
	}

	if e.skipFridaySaturday {
		switch Weekday(now.In(e.eastern)) {
		case Friday, Saturday:
			report.Other = Status{Window: WindowNormal}
			return report, nil
		}
	}

	report.Other = e.DisplayWindow(now, normal, e.report)
	return report, nil
}

// Schedule returns the configured windows.
func (e *Evaluator) Schedule() Schedule {
	return e.schedule
}

// ReportLocation is the zone Begin and End of every Status are rendered in.
func (e *Evaluator) ReportLocation() *time.Location {
	return e.report
}
