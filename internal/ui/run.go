package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"realtodo/internal/app"
	"realtodo/internal/config"
)

// Run starts the interactive view and blocks until the user quits or ctx
// is cancelled. Log output goes to the config directory while it runs.
func Run(ctx context.Context, ctrl *app.Controller, cfg *config.Config) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	prev := log.StandardLogger().Out
	log.SetOutput(f)
	defer log.SetOutput(prev)

	p := tea.NewProgram(New(ctx, ctrl), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
