package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/honkbot/honkbot/internal/google"
	"github.com/honkbot/honkbot/internal/maintenance"
	"github.com/honkbot/honkbot/internal/parse"
)

// DefaultJoinableRoles are the regional roles members may add to themselves.
var DefaultJoinableRoles = []string{
	"AKR", "CIN", "CLE", "COL", "DAY", "TOL",
	"MI", "KY", "PA", "IN", "NY", "CA",
	"Canada", "EX-OH",
}

func New() *Config {
	return &Config{
		DSN:                   filepath.Join(filepath.Dir(os.Args[0]), "honkbot.db"),
		BackupInterval:        24 * time.Hour,
		JoinableRolesString:   strings.Join(DefaultJoinableRoles, ","),
		RulesEmoji:            "✅",
		MaintenanceNormal:     "20:00-22:00",
		MaintenanceExtended:   "17:00-22:00",
		MaintenanceUS:         "12:00-17:00",
		MaintenanceZone:       "UTC",
		MaintenanceReportZone: maintenance.ZoneEastern,
		GoogleSearchEngineID:  google.DefaultSearchEngineID,
	}
}

type Config struct {
	DSN            string        `koanf:"dsn" description:"database file path (DSN)"`
	DiscordToken   string        `koanf:"discord.token" description:"discord bot token"`
	GuildIDString  string        `koanf:"discord.guild.id" description:"optional guild id, slash commands are registered for this guild only when set"`
	BackupInterval time.Duration `koanf:"backup.interval" description:"interval for creating backups, e.g. 0s (disabled), 1m, 1h, 12h, 24h, 168h, 720h"`
	GuildID        discord.GuildID
	BackupDir      string
	BackupFile     string

	SpeedrunToken        string `koanf:"speedrun.token" description:"speedrun.com api token, /record is disabled without it"`
	GoogleAPIKey         string `koanf:"google.api.key" description:"google api key, /image and /youtube are disabled without it"`
	GoogleSearchEngineID string `koanf:"google.search.engine.id" description:"programmable search engine id used for image search"`

	JoinableRolesString string `koanf:"roles.joinable" description:"comma separated list of role names that members may join and leave"`
	JoinableRoles       []string

	RulesChannel   string `koanf:"rules.channel.id" description:"channel id of the rules message, reaction roles are disabled when empty"`
	RulesMessage   string `koanf:"rules.message.id" description:"message id of the rules message"`
	RulesEmoji     string `koanf:"rules.emoji" description:"emoji that has to be added to the rules message"`
	RulesRole      string `koanf:"rules.role" description:"name of the role that is granted for reacting to the rules message"`
	RulesChannelID discord.ChannelID
	RulesMessageID discord.MessageID

	MaintenanceNormal     string `koanf:"maintenance.normal" description:"daily maintenance window of the japanese servers, e.g. 20:00-22:00"`
	MaintenanceExtended   string `koanf:"maintenance.extended" description:"extended maintenance window on the third tuesday in japan, e.g. 17:00-22:00"`
	MaintenanceUS         string `koanf:"maintenance.us" description:"maintenance window of the us servers on the third tuesday in japan, e.g. 12:00-17:00"`
	MaintenanceZone       string `koanf:"maintenance.zone" description:"time zone the maintenance windows are defined in, e.g. UTC"`
	MaintenanceReportZone string `koanf:"maintenance.report.zone" description:"time zone maintenance times are displayed in, e.g. America/New_York"`
	MaintenanceSkipFriSat bool   `koanf:"maintenance.skip.friday.saturday" description:"report no japanese server maintenance on fridays and saturdays (US Eastern)"`
	Schedule              maintenance.Schedule
	ReportLocation        *time.Location
}

func (c *Config) Validate() error {

	if c.DiscordToken == "" {
		return fmt.Errorf("discord token is required")
	}

	if c.DSN == "" {
		return errors.New("database DSN is missing")
	}

	if c.BackupInterval < 0 {
		return fmt.Errorf("backup interval must be greater or equal to 0s, e.g. 0s, 24h: %s", c.BackupInterval)
	}

	if c.GuildIDString != "" {
		id, err := parse.GuildID(c.GuildIDString)
		if err != nil {
			return err
		}
		c.GuildID = id
	}

	c.JoinableRoles = parse.List(c.JoinableRolesString)

	err := c.validateRules()
	if err != nil {
		return err
	}

	err = c.validateMaintenance()
	if err != nil {
		return err
	}

	dsn := filepath.ToSlash(c.DSN)
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("error parsing DSN: %w", err)
	}

	c.BackupDir = path.Join(path.Dir(u.Path), "backups")
	c.BackupFile = path.Base(u.Path)

	v := u.Query()
	if !v.Has("_txlock") {
		v["_txlock"] = []string{"immediate"} // "deferred" (the default), "immediate", or "exclusive"
	}
	if !v.Has("_pragma") {
		v["_pragma"] = []string{"busy_timeout(5000)"}
	}

	u.RawQuery = v.Encode()
	c.DSN = u.String()
	return nil
}

// RulesEnabled is true when reactions on the rules message grant the rules role.
func (c *Config) RulesEnabled() bool {
	return c.RulesChannelID.IsValid() && c.RulesMessageID.IsValid()
}

func (c *Config) validateRules() error {
	if c.RulesChannel == "" && c.RulesMessage == "" {
		return nil
	}

	if c.RulesChannel == "" || c.RulesMessage == "" {
		return errors.New("rules channel id and rules message id must be set together")
	}
	if c.RulesEmoji == "" {
		return errors.New("rules emoji is required when a rules message is configured")
	}
	if c.RulesRole == "" {
		return errors.New("rules role is required when a rules message is configured")
	}

	channelID, err := parse.ChannelID(c.RulesChannel)
	if err != nil {
		return fmt.Errorf("invalid rules channel: %w", err)
	}
	messageID, err := parse.MessageID(c.RulesMessage)
	if err != nil {
		return fmt.Errorf("invalid rules message: %w", err)
	}

	c.RulesChannelID = channelID
	c.RulesMessageID = messageID
	return nil
}

func (c *Config) validateMaintenance() error {
	anchor, err := parse.Location(c.MaintenanceZone)
	if err != nil {
		return fmt.Errorf("invalid maintenance zone: %w", err)
	}

	report, err := parse.Location(c.MaintenanceReportZone)
	if err != nil {
		return fmt.Errorf("invalid maintenance report zone: %w", err)
	}

	spans := []struct {
		name string
		span string
	}{
		{maintenance.WindowNormal, c.MaintenanceNormal},
		{maintenance.WindowExtended, c.MaintenanceExtended},
		{maintenance.WindowUS, c.MaintenanceUS},
	}

	schedule := make(maintenance.Schedule, 0, len(spans))
	for _, s := range spans {
		w, err := parse.Window(s.name, s.span, anchor)
		if err != nil {
			return err
		}
		schedule = append(schedule, w)
	}

	err = schedule.Validate()
	if err != nil {
		return err
	}

	c.Schedule = schedule
	c.ReportLocation = report
	return nil
}
