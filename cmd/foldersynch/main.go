package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ricardoipr/foldersynch/internal/config"
	"github.com/Ricardoipr/foldersynch/internal/logging"
	"github.com/Ricardoipr/foldersynch/internal/sync"
	"github.com/Ricardoipr/foldersynch/internal/version"
	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	red  = color.New(color.FgHiRed, color.Bold).SprintFunc()
	cyan = color.New(color.FgHiCyan, color.Bold).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:     "foldersynch",
	Short:   "One-way periodic folder synchronization",
	Long:    "FolderSynch keeps a replica directory tree mirroring a source directory tree:\nnew and changed files are copied over, entries missing from the source are removed.",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Path:            viper.ConfigFileUsed(),
			SourceDir:       viper.GetString("source_dir"),
			ReplicaDir:      viper.GetString("replica_dir"),
			LogPath:         viper.GetString("log_path"),
			IntervalSeconds: viper.GetInt("interval_seconds"),
			CooldownSeconds: viper.GetInt("cooldown_seconds"),
			Watch:           viper.GetBool("watch"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// config is good, errors past this point are runtime failures
		cmd.SilenceUsage = true

		closeLog := logging.Setup(cfg.LogPath)
		defer closeLog()

		fmt.Println(cyan(version.ShortWithApp()))

		return run(cmd.Context(), cfg)
	},
}

func run(ctx context.Context, cfg *config.Config) error {
	lock := sync.NewReplicaLock(cfg.ReplicaDir)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	engine, err := sync.NewEngine(cfg.SourceDir, cfg.ReplicaDir, nil)
	if err != nil {
		return err
	}

	manager, err := sync.NewManager(engine, sync.ManagerOptions{
		Interval: cfg.Interval(),
		Cooldown: cfg.Cooldown(),
		Watch:    cfg.Watch,
	})
	if err != nil {
		return err
	}

	defer slog.Info("Bye!")
	if err := manager.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("source", "s", "", "Source directory to mirror from")
	rootCmd.Flags().StringP("replica", "r", "", "Replica directory to mirror into")
	rootCmd.Flags().StringP("log", "l", config.DefaultLogFilePath, "Log file or directory")
	rootCmd.Flags().IntP("interval", "i", config.DefaultIntervalSeconds, "Seconds between synchronization cycles")
	rootCmd.Flags().Int("cooldown", config.DefaultCooldownSeconds, "Seconds to wait before retrying a failed cycle")
	rootCmd.Flags().BoolP("watch", "w", false, "Also synchronize when the source changes")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Config file")
}

func main() {
	// console-only logger until the log destination is known
	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: !isatty.IsTerminal(os.Stdout.Fd()),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.SetConfigFile(config.DefaultConfigPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("source_dir", cmd.Flags().Lookup("source"))
	viper.BindPFlag("replica_dir", cmd.Flags().Lookup("replica"))
	viper.BindPFlag("log_path", cmd.Flags().Lookup("log"))
	viper.BindPFlag("interval_seconds", cmd.Flags().Lookup("interval"))
	viper.BindPFlag("cooldown_seconds", cmd.Flags().Lookup("cooldown"))
	viper.BindPFlag("watch", cmd.Flags().Lookup("watch"))

	viper.SetEnvPrefix("FOLDERSYNCH")
	viper.AutomaticEnv()

	return nil
}
