// Package cli implements the interactive terminal client: a small REPL
// over the motoreg HTTP API.
package cli

import (
	"bufio"
	"os"

	"motoreg/internal/client/api"
	"motoreg/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}
