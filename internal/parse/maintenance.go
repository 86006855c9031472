package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/honkbot/honkbot/internal/maintenance"
)

const (
	LayoutTimeOfDay = "15:04"
)

func TimeOfDay(in string) (maintenance.TimeOfDay, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(in), ":")
	if !found || len(hh) == 0 || len(mm) != 2 {
		return maintenance.TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected format %s", in, LayoutTimeOfDay)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return maintenance.TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", in, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return maintenance.TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", in, err)
	}

	t, err := maintenance.NewTimeOfDay(hour, minute)
	if err != nil {
		return maintenance.TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", in, err)
	}
	return t, nil
}

// Window parses a span in the format "20:00-22:00" that is anchored to loc.
func Window(name, span string, loc *time.Location) (maintenance.Window, error) {
	start, end, found := strings.Cut(span, "-")
	if !found {
		return maintenance.Window{}, fmt.Errorf("invalid %s maintenance window %q: expected format %s-%s", name, span, LayoutTimeOfDay, LayoutTimeOfDay)
	}

	s, err := TimeOfDay(start)
	if err != nil {
		return maintenance.Window{}, fmt.Errorf("invalid %s maintenance window start: %w", name, err)
	}
	e, err := TimeOfDay(end)
	if err != nil {
		return maintenance.Window{}, fmt.Errorf("invalid %s maintenance window end: %w", name, err)
	}

	return maintenance.NewWindow(name, s, e, loc)
}
