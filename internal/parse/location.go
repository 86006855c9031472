package parse

import (
	"fmt"
	"strings"
	"time"
)

// Location loads an IANA time zone. An empty name is rejected instead of
// silently falling back to UTC.
func Location(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("missing time zone (example: America/New_York)")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q (example: America/New_York): %w", name, err)
	}
	return loc, nil
}
