package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	a := app.App{
		Config: config.CreateNewConfig(),
	}

	if err := a.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up the server")
	}

	go a.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := a.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop server cleanly")
	}
}
