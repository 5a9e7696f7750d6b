package cli

import (
	"context"

	"realtodo/internal/app"
	"realtodo/internal/backend/restapi"
	"realtodo/internal/config"
	"realtodo/internal/session"
	"realtodo/internal/tasklist"
)

// DefaultFactory wires a Controller to the HTTP API at cfg.Server and the
// credential store selected by cfg.Store.
func DefaultFactory(ctx context.Context, cfg *config.Config) (*app.Controller, error) {
	p, err := session.NewPersister(cfg.Store, cfg.Dir)
	if err != nil {
		return nil, err
	}
	client := restapi.New(cfg.Server, restapi.WithTimeout(cfg.Timeout))
	return app.New(client, session.Open(p), tasklist.New(client)), nil
}
