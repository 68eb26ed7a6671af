package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"

	"github.com/Veraticus/claimflow/internal/credential"
	"github.com/Veraticus/claimflow/internal/detail"
)

// RunConfig holds what the detail view needs to run.
type RunConfig struct {
	API               detail.ClaimAPI
	Credentials       credential.Store
	// OnChange, when set, sees every committed state before the view does.
	OnChange          func(detail.Snapshot)
	ClaimID           string
	ControllerOptions []detail.Option
	Options           []Option
}

// Run shows the detail view for one claim until the user quits. The
// background URL refresh runs for exactly as long as the program does.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.API == nil {
		return fmt.Errorf("api client is required")
	}
	if cfg.Credentials == nil {
		return fmt.Errorf("credential store is required")
	}
	if cfg.ClaimID == "" {
		return fmt.Errorf("claim id is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	viewCfg := defaultConfig()
	for _, opt := range cfg.Options {
		opt(&viewCfg)
	}

	// The browser helper writes to stdout, which belongs to the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	var program *tea.Program
	notify := func(snap detail.Snapshot) {
		if cfg.OnChange != nil {
			cfg.OnChange(snap)
		}
		if program != nil {
			program.Send(stateChangedMsg{})
		}
	}
	opts := append([]detail.Option{}, cfg.ControllerOptions...)
	opts = append(opts, detail.WithOnChange(notify))
	ctrl := detail.New(cfg.ClaimID, cfg.API, cfg.Credentials, opts...)

	program = tea.NewProgram(
		newModel(ctx, ctrl, viewCfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	go ctrl.Run(ctx)

	slog.Info("Opening claim detail view", "claim_id", cfg.ClaimID)
	_, err := program.Run()
	cancel()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("detail view failed: %w", err)
	}
	return nil
}
