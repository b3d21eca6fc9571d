package utils

import (
	"context"
	"time"

	"github.com/coinbase-samples/entangler-swap-go/model"
)

func getTimeoutDuration(config *model.Config) time.Duration {
	if config.Daemon.ContextTimeoutDuration > 0 {
		return time.Duration(config.Daemon.ContextTimeoutDuration) * time.Second
	}

	return 7 * time.Second
}

func GetContextWithTimeout(config *model.Config) (context.Context, context.CancelFunc) {
	timeoutDuration := getTimeoutDuration(config)

	return context.WithTimeout(context.Background(), timeoutDuration)
}
