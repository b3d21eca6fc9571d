package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/coinbase-samples/entangler-swap-go/agent"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic("cannot initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	swapAgent, err := agent.NewSwapAgent(log, configPath)
	if err != nil {
		log.Error("failed to initialize swap agent", zap.Error(err))
		os.Exit(1)
	}

	if err := swapAgent.Setup(); err != nil {
		log.Error("failed to setup swap agent", zap.Error(err))
		os.Exit(1)
	}

	if err := swapAgent.Run(); err != nil {
		log.Error("error running swap agent", zap.Error(err))
		os.Exit(1)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)
	<-stopChan

	log.Info("Shutting down Swap Agent...")
	swapAgent.Stop()
}
