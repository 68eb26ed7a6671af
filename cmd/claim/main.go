package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/config"
)

// passwordAttempts bounds password prompts per command.
const passwordAttempts = 3

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "claim",
		Short: "🧾 Expense claims from the terminal",
		Long: `claim: create reimbursement claims with receipts and payout details,
then follow them through approval and payment by claim id.

A claim may be protected by a password; it is remembered locally so you only
type it once.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/claim/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", config.DefaultAPIBaseURL, "claims API base URL")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("lang", "", "interface language (zh, en, de-CH, fr; default: from $LANG)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyAPIBaseURL, rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLang, rootCmd.PersistentFlags().Lookup("lang"))

	// Add commands
	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(finishCmd())
	rootCmd.AddCommand(passwordCmd())
	rootCmd.AddCommand(tagsCmd())
	rootCmd.AddCommand(flowchartCmd())
	rootCmd.AddCommand(linkCmd())
	rootCmd.AddCommand(recentCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(localizer().Text(common.UserMessage(err))))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/claim", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: CLAIM_API_BASE_URL and friends
	viper.SetEnvPrefix("CLAIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}

	format := viper.GetString(config.KeyLogFormat)
	if format != "console" && format != "json" {
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, format)
	}

	return common.SetupLogger(level, format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "claim version %s\n", version)
		},
	}
}
