package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

func TestUICmd(t *testing.T) {
	var gotCfg *config.Config
	cmd := &UICmd{run: func(ctx context.Context, ctrl *app.Controller, cfg *config.Config) error {
		gotCfg = cfg
		return nil
	}}
	cfg := &config.Config{Dir: t.TempDir()}
	var out, errOut bytes.Buffer

	if code := cmd.Run(context.Background(), cfg, nil, nil, &out, &errOut); code != exitcode.Success {
		t.Errorf("expected success, got %d", code)
	}
	if gotCfg != cfg {
		t.Error("expected config to be passed through")
	}

	cmd.run = func(context.Context, *app.Controller, *config.Config) error {
		return errors.New("no tty")
	}
	if code := cmd.Run(context.Background(), cfg, nil, nil, &out, &errOut); code != exitcode.BackendError {
		t.Errorf("expected backend error, got %d", code)
	}
	if errOut.String() != "error: no tty\n" {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}
