package main

import (
	"fmt"

	"github.com/Ricardoipr/foldersynch/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file for later runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			if existing, err := config.Load(configPath); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "FolderSynch already initialized")
				printConfig(cmd, existing)
				return nil
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			cmd.SilenceUsage = true
			if err := cfg.Save(configPath); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			cfg.Path = configPath

			fmt.Fprintln(cmd.OutOrStdout(), "FolderSynch initialized")
			printConfig(cmd, &cfg)
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&cfg.SourceDir, "source", "s", "", "Source directory to mirror from")
	cmd.Flags().StringVarP(&cfg.ReplicaDir, "replica", "r", "", "Replica directory to mirror into")
	cmd.Flags().StringVarP(&cfg.LogPath, "log", "l", config.DefaultLogFilePath, "Log file or directory")
	cmd.Flags().IntVarP(&cfg.IntervalSeconds, "interval", "i", config.DefaultIntervalSeconds, "Seconds between synchronization cycles")
	cmd.Flags().IntVar(&cfg.CooldownSeconds, "cooldown", config.DefaultCooldownSeconds, "Seconds to wait before retrying a failed cycle")
	cmd.Flags().BoolVarP(&cfg.Watch, "watch", "w", false, "Also synchronize when the source changes")

	return cmd
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config Path: %s\n", cyan(cfg.Path))
	fmt.Fprintf(out, "Source:      %s\n", cyan(cfg.SourceDir))
	fmt.Fprintf(out, "Replica:     %s\n", cyan(cfg.ReplicaDir))
	fmt.Fprintf(out, "Log:         %s\n", cyan(cfg.LogPath))
	fmt.Fprintf(out, "Interval:    %ds\n", cfg.IntervalSeconds)
}
