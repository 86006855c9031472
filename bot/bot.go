package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/go-co-op/gocron/v2"
	"github.com/honkbot/honkbot/config"
	"github.com/honkbot/honkbot/internal/google"
	"github.com/honkbot/honkbot/internal/insult"
	"github.com/honkbot/honkbot/internal/maintenance"
	"github.com/honkbot/honkbot/internal/remywiki"
	"github.com/honkbot/honkbot/internal/rival"
	"github.com/honkbot/honkbot/internal/smx"
	"github.com/honkbot/honkbot/internal/speedrun"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	ctx     context.Context
	state   *state.State
	db      *sqlx.DB
	userID  discord.UserID
	guildID discord.GuildID

	evaluator     *maintenance.Evaluator
	joinableRoles []string
	rules         rules

	ddr  *rival.Store
	iidx *rival.Store

	// nil when no api credentials are configured
	speedrun *speedrun.Client
	google   *google.Client

	remywiki *remywiki.Client
	smx      *smx.Client
	insult   *insult.Client

	mu               sync.Mutex
	lastRecordSearch string

	scheduler gocron.Scheduler

	backupDir      string
	backupFile     string
	backupInterval time.Duration
}

type rules struct {
	channelID discord.ChannelID
	messageID discord.MessageID
	emoji     string
	role      string
}

// New requires a validated configuration and a migrated database.
// A bot token starts with Nj... and can be obtained from the discord developer portal.
func New(ctx context.Context, cfg *config.Config, db *sqlx.DB, evaluator *maintenance.Evaluator) (*Bot, error) {
	if evaluator == nil {
		return nil, errors.New("maintenance evaluator is required")
	}

	scheduler, err := newScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := state.New("Bot " + cfg.DiscordToken)
	bot := &Bot{
		ctx:            ctx,
		state:          s,
		db:             db,
		guildID:        cfg.GuildID,
		evaluator:      evaluator,
		joinableRoles:  cfg.JoinableRoles,
		ddr:            rival.NewStore(db, rival.DDR),
		iidx:           rival.NewStore(db, rival.IIDX),
		remywiki:       remywiki.New(),
		smx:            smx.New(),
		insult:         insult.New(),
		scheduler:      scheduler,
		backupDir:      cfg.BackupDir,
		backupFile:     cfg.BackupFile,
		backupInterval: cfg.BackupInterval,
	}

	if cfg.RulesEnabled() {
		bot.rules = rules{
			channelID: cfg.RulesChannelID,
			messageID: cfg.RulesMessageID,
			emoji:     cfg.RulesEmoji,
			role:      cfg.RulesRole,
		}
	}

	if cfg.SpeedrunToken != "" {
		bot.speedrun = speedrun.New(cfg.SpeedrunToken)
	} else {
		log.Println("speedrun.com token is missing, /record is disabled")
	}

	if cfg.GoogleAPIKey != "" {
		bot.google, err = google.New(ctx, cfg.GoogleAPIKey, cfg.GoogleSearchEngineID)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("google api key is missing, /image and /youtube are disabled")
	}

	s.AddIntents(
		gateway.IntentGuilds |
			gateway.IntentGuildMessages |
			gateway.IntentGuildMessageReactions |
			gateway.IntentMessageContent,
	)

	var startupOnce sync.Once
	s.AddHandler(func(e *gateway.ReadyEvent) {
		log.Printf("logged in as %s - %s", e.User.Username, e.User.ID)

		// the gateway connection may be resumed multiple times
		startupOnce.Do(func() {
			bot.userID = e.User.ID

			// print statistics on startup
			bot.printDailyStatistics()

			_, err := bot.scheduler.NewJob(
				gocron.DailyJob(1, atHours(0)),
				gocron.NewTask(bot.printDailyStatistics),
			)
			if err != nil {
				log.Printf("failed to schedule daily statistics: %v", err)
			}

			if bot.backupInterval > 0 {
				_, err = bot.scheduler.NewJob(
					SelectJobDefinition(bot.backupInterval),
					gocron.NewTask(bot.createBackup),
				)
				if err != nil {
					log.Printf("failed to schedule backups: %v", err)
				}
				// after the backup of the first day of the month
				_, err = bot.scheduler.NewJob(
					gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), atHours(jobHour+1)),
					gocron.NewTask(bot.compressBackups),
				)
				if err != nil {
					log.Printf("failed to schedule backup compression: %v", err)
				}
			}
		})
	})

	// requires message content intent
	s.AddHandler(bot.handleMessage)

	s.AddHandler(bot.handleAddRulesReaction)
	s.AddHandler(bot.handleRemoveRulesReaction)

	s.AddHandler(bot.handleAutocompletionRoleInteraction)

	r := cmdroute.NewRouter()

	r.AddFunc("test", bot.commandTest)
	r.AddFunc("eamuse", bot.commandEamuse)
	r.AddFunc("join", bot.commandJoin)
	r.AddFunc("leave", bot.commandLeave)

	// commands that call external apis may take longer than
	// the interaction deadline
	r.Group(func(r *cmdroute.Router) {
		r.Use(cmdroute.Deferrable(s, cmdroute.DeferOpts{}))

		r.AddFunc("insult", bot.commandInsult)
		r.AddFunc("ranatalus", bot.commandRanatalus)
		r.AddFunc("record", bot.commandRecord)
		r.AddFunc("image", bot.commandImage)
		r.AddFunc("youtube", bot.commandYoutube)
		r.AddFunc("jacket", bot.commandJacket)
		r.AddFunc("banner", bot.commandBanner)
	})

	s.AddInteractionHandler(r)

	err = bot.overrideCommands()
	if err != nil {
		return nil, fmt.Errorf("failed to override commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Connect(ctx context.Context) error {
	b.scheduler.Start()
	return b.state.Connect(ctx)
}

// Close waits for a running backup job before the scheduler stops.
func (b *Bot) Close() error {
	return errors.Join(
		b.scheduler.Shutdown(),
		b.state.Close(),
	)
}

// newScheduler runs one job at a time, backups and their compression never overlap.
func newScheduler() (gocron.Scheduler, error) {
	return gocron.NewScheduler(gocron.WithLimitConcurrentJobs(1, gocron.LimitModeWait))
}

func (b *Bot) isMe(userID discord.UserID) bool {
	return userID == b.userID
}

func errorResponse(err error) *api.InteractionResponseData {
	log.Println(err)
	return &api.InteractionResponseData{
		Content:         option.NewNullableString("**Error:** " + err.Error()),
		Flags:           discord.EphemeralMessage,
		AllowedMentions: &api.AllowedMentions{ /* none */ },
	}
}

// ephemeralResponse is only visible to the user that invoked the command.
func ephemeralResponse(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content:         option.NewNullableString(content),
		Flags:           discord.EphemeralMessage,
		AllowedMentions: &api.AllowedMentions{ /* none */ },
	}
}

func response(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content:         option.NewNullableString(content),
		AllowedMentions: &api.AllowedMentions{ /* none */ },
	}
}
