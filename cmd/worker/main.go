package main

import (
	"context"
	"os"
	"os/signal"
	"securecrop/internal/app/consumers"
	"securecrop/internal/app/deps"
	"securecrop/internal/app/services"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(context.Background(), "Worker has started.")
	<-stopCh
	log.Info(context.Background(), "Worker is stopping gracefully.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
