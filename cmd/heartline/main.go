package main

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/cli/patient"
	"github.com/julianstephens/heartline/internal/cli/progress"
	"github.com/julianstephens/heartline/internal/cli/records"
	"github.com/julianstephens/heartline/internal/cli/settings"
	"github.com/julianstephens/heartline/internal/cli/system"
	"github.com/julianstephens/heartline/internal/config"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/notifier"
	"github.com/julianstephens/heartline/internal/storage/redis"
	"github.com/julianstephens/heartline/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"~/.config/heartline/heartline.db" env:"HEARTLINE_CONFIG"`
	PatientID string `help:"Patient to act on (defaults to the default_patient setting)." name:"patient" env:"HEARTLINE_PATIENT"`
	RedisURL  string `help:"Redis URL for shared notification suppression flags." name:"redis-url" env:"HEARTLINE_REDIS_URL"`
	Debug     bool   `help:"Write log output to stderr." env:"HEARTLINE_DEBUG"`
	LogLevel  string `help:"Minimum log level: debug, info, warn or error." env:"HEARTLINE_LOG_LEVEL"`

	Init    system.InitCmd     `cmd:"" help:"Initialize heartline storage."`
	Migrate system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Tui     system.TuiCmd      `cmd:"" help:"Launch the journey viewer." default:"1"`
	Onboard patient.OnboardCmd `cmd:"" help:"Answer the onboarding questionnaire."`
	Patient struct {
		Set  patient.PatientSetCmd  `cmd:"" help:"Set the index event date."`
		Show patient.PatientShowCmd `cmd:"" help:"Show the patient profile." default:"1"`
	} `cmd:"" help:"Manage the patient profile."`
	Task struct {
		Mark records.TaskMarkCmd `cmd:"" help:"Mark daily tasks as done."`
		Show records.TaskShowCmd `cmd:"" help:"Show the tasks of a day." default:"1"`
	} `cmd:"" help:"Track the three daily recovery tasks."`
	Med struct {
		Log  records.MedLogCmd  `cmd:"" help:"Log a medication intake."`
		List records.MedListCmd `cmd:"" help:"List recent medication intakes." default:"1"`
	} `cmd:"" help:"Track medication intakes."`
	Metric struct {
		Log  records.MetricLogCmd  `cmd:"" help:"Log a health metric."`
		List records.MetricListCmd `cmd:"" help:"List recent health metrics." default:"1"`
	} `cmd:"" help:"Track health metrics."`
	Journey progress.JourneyCmd `cmd:"" help:"Show the recovery journey timeline."`
	Streak  progress.StreakCmd  `cmd:"" help:"Show the current streak."`
	Backup  struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check the OS keyring." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Send a streak notification (run periodically)."`
}

// needsLoad reports whether the selected command expects an initialized store.
func needsLoad(command string) bool {
	for _, prefix := range []string{"init", "migrate", "keyring"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Cardiac recovery journey tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := config.LoadEnv(); err != nil {
		errors.Fatal(err)
	}

	conn, err := config.Resolve(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, ConfigDir: config.LogDir(conn)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Resolved storage", "source", conn.Source, "postgres", conn.IsPostgres())

	store := config.NewProvider(conn)
	appCtx := &cli.Context{
		Store:    store,
		Clock:    utils.RealClock{},
		Notifier: notifier.New(),
		Patient:  CLI.PatientID,
	}

	if CLI.RedisURL != "" {
		flags, err := redis.New(CLI.RedisURL)
		if err != nil {
			errors.Fatal(err)
		}
		if err := flags.Connect(context.Background()); err != nil {
			logger.Warn("Redis unavailable, using local notification flags", "error", err)
		} else {
			defer flags.Close()
			appCtx.Flags = flags
		}
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		// deferred Close calls are skipped by os.Exit
		store.Close()
		errors.Fatal(err)
	}
}
