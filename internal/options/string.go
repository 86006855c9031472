package options

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
)

// String returns the trimmed value of a required string option.
func String(name string, options discord.CommandInteractionOptions) (string, error) {
	s := strings.TrimSpace(options.Find(name).String())
	if s == "" {
		return "", fmt.Errorf("missing %q parameter", name)
	}
	return s, nil
}

// StringOption returns the trimmed value of an optional string option or
// defaultValue when it was not provided.
func StringOption(name string, options discord.CommandInteractionOptions, defaultValue string) string {
	s := strings.TrimSpace(options.Find(name).String())
	if s == "" {
		return defaultValue
	}
	return s
}
