package main

import (
	"context"

	"motoreg/internal/client/cli"
	"motoreg/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
