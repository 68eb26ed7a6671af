package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/claimflow/internal/api"
	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/config"
	"github.com/Veraticus/claimflow/internal/credential"
	"github.com/Veraticus/claimflow/internal/detail"
	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/model"
	"github.com/Veraticus/claimflow/internal/storage"
)

// app bundles what most commands need.
type app struct {
	client   *api.Client
	store    *storage.SQLiteStorage
	creds    credential.Store
	tr       *i18n.Printer
	settings config.Settings
}

func loadSettings() (config.Settings, error) {
	config.SetDefaults(viper.GetViper())
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return s, common.NewUserError("Invalid configuration", err)
	}
	return s, nil
}

// localizer returns a printer for the configured language. It never fails, so
// errors can still be shown when the configuration is invalid.
func localizer() *i18n.Printer {
	lang := strings.TrimSpace(viper.GetString(config.KeyLang))
	if lang == "" {
		lang = i18n.EnvLocale()
	}
	return i18n.New(i18n.Match(lang))
}

func newAPIClient(s config.Settings) (*api.Client, error) {
	client, err := api.New(s.APIBaseURL, api.WithTimeout(s.APITimeout))
	if err != nil {
		return nil, common.NewUserError("Invalid API URL", err)
	}
	return client, nil
}

// initStorage initializes the local database with proper path expansion.
func initStorage(ctx context.Context, s config.Settings) (*storage.SQLiteStorage, error) {
	if err := config.EnsureParentDir(s.DatabasePath); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(s.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initCredentials prefers the cookie jar, scoped to the API host, and falls
// back to the database when the jar cannot be used.
func initCredentials(s config.Settings, host string, store *storage.SQLiteStorage) credential.Store {
	fallback := credential.NewKVStore(store)
	if err := config.EnsureParentDir(s.CookieFile); err != nil {
		slog.Warn("Cookie file unavailable, using database for passwords", "path", s.CookieFile, "error", err)
		return fallback
	}
	jar, err := credential.NewCookieStore(s.CookieFile, host)
	if err != nil {
		slog.Warn("Cookie file unavailable, using database for passwords", "path", s.CookieFile, "error", err)
		return fallback
	}
	return credential.NewLayeredStore(jar, fallback)
}

func openApp(ctx context.Context) (*app, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	client, err := newAPIClient(s)
	if err != nil {
		return nil, err
	}
	store, err := initStorage(ctx, s)
	if err != nil {
		return nil, common.NewUserError("Failed to open local database", err)
	}

	return &app{
		settings: s,
		client:   client,
		store:    store,
		creds:    initCredentials(s, client.Host(), store),
		tr:       i18n.New(s.Lang),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// remember adds a loaded claim to the recent list. Failures only get logged.
func (a *app) remember(ctx context.Context, claim *model.Claim) {
	if claim == nil || claim.ID == "" {
		return
	}
	if err := a.store.RecordClaim(ctx, claim); err != nil {
		slog.Warn("Failed to record recent claim", "claim_id", claim.ID, "error", err)
	}
}

func (a *app) claimLink(id string) string {
	return shareLink(a.settings.WebBaseURL, id)
}

// shareLink is the password-free web link of claim id.
func shareLink(webBase, id string) string {
	raw := detail.ClaimLink(webBase, id)
	link, err := detail.ShareLink(raw)
	if err != nil {
		return raw
	}
	return link
}

// logToFile moves logging off the terminal while a full-screen view runs.
// The returned function restores the previous logger and closes the file.
func logToFile(s config.Settings) (func(), error) {
	if err := config.EnsureParentDir(s.LogFile); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level, err := common.ParseLevel(s.LogLevel)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	previous := slog.Default()
	if err := common.SetupLoggerTo(f, level, s.LogFormat); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		slog.SetDefault(previous)
		_ = f.Close()
	}, nil
}

// claimIDArg validates the single claim id argument.
func claimIDArg(args []string) (string, error) {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", common.NewUserError("Claim id cannot be empty", credential.ErrEmptyID)
	}
	return id, nil
}

// readPassword takes the password from the --password flag, or prompts for it.
func readPassword(cmd *cobra.Command, prompter *cli.PasswordPrompter, label string) (string, error) {
	if cmd.Flags().Changed("password") {
		password, _ := cmd.Flags().GetString("password")
		return strings.TrimSpace(password), nil
	}
	return prompter.Prompt(cmd.Context(), label)
}

// newPrompter reads from the command's input. One prompter per command run
// keeps buffered input between questions.
func newPrompter(cmd *cobra.Command) *cli.PasswordPrompter {
	return cli.NewPasswordPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

// loadClaim fetches id with the stored password. When the claim is protected
// it asks prompter up to passwordAttempts times; a nil prompter fails
// instead. A --password flag is tried once.
func loadClaim(cmd *cobra.Command, a *app, id string, prompter *cli.PasswordPrompter) (*detail.Controller, error) {
	ctx := cmd.Context()
	ctrl := detail.New(id, a.client, a.creds)

	err := ctrl.Load(ctx)
	for i := 0; i < passwordAttempts && ctrl.Snapshot().Phase == detail.PhasePasswordRequired; i++ {
		fromFlag := cmd.Flags().Changed("password")
		if prompter == nil && !fromFlag {
			break
		}
		if i > 0 {
			writeLine(cmd.OutOrStdout(), cli.FormatWarning(a.tr.T("Wrong password, try again.")))
		}
		password, perr := readPassword(cmd, prompter, a.tr.T("Password for claim %s", id))
		if perr != nil {
			ctrl.CancelPassword()
			return nil, common.NewUserError(detail.MessagePasswordRequired, perr)
		}
		err = ctrl.SubmitPassword(ctx, password)
		if fromFlag {
			break
		}
	}

	snap := ctrl.Snapshot()
	switch snap.Phase {
	case detail.PhaseContent:
		a.remember(ctx, snap.Claim)
		return ctrl, nil
	case detail.PhasePasswordRequired:
		return nil, common.NewUserError(detail.MessagePasswordRequired, err)
	default:
		return nil, common.NewUserError(detail.Describe(err), err)
	}
}

// writeLine writes to w and logs failures the way every command does.
func writeLine(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
