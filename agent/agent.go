package agent

import (
	"fmt"
	"sync"

	"github.com/coinbase-samples/entangler-swap-go/core"
	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/coinbase-samples/entangler-swap-go/utils"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SwapAgent struct {
	config  *model.Config
	cron    *cron.Cron
	ledger  *utils.Ledger
	swapper *core.Swapper
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewSwapAgent(log *zap.Logger, configPath string) (*SwapAgent, error) {
	config, err := utils.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return NewSwapAgentFromConfig(log, config), nil
}

func NewSwapAgentFromConfig(log *zap.Logger, config *model.Config) *SwapAgent {
	return &SwapAgent{
		config: config,
		cron:   cron.New(cron.WithSeconds()),
		log:    log,
	}
}

func (a *SwapAgent) Setup() error {
	ledger, err := utils.NewLedger(a.config.Accounts)
	if err != nil {
		return fmt.Errorf("cannot build ledger: %w", err)
	}
	a.ledger = ledger
	a.swapper = core.NewSwapper(a.config, ledger, a.log)

	for _, balance := range ledger.Snapshot() {
		a.log.Info("loaded account balance",
			zap.String("account", balance.Account),
			zap.String("mint", balance.Mint),
			zap.Uint64("amount", balance.Amount),
		)
	}

	return nil
}

func (a *SwapAgent) Ledger() *utils.Ledger {
	return a.ledger
}

func (a *SwapAgent) Run() error {
	if a.swapper == nil {
		return fmt.Errorf("agent is not set up")
	}

	for _, rule := range a.config.Rules {
		rule := rule
		_, err := a.cron.AddFunc(rule.Schedule, func() {
			a.wg.Add(1)
			defer a.wg.Done()

			ctx, cancel := utils.GetContextWithTimeout(a.config)
			defer cancel()

			core.ProcessRule(ctx, a.swapper, rule, uuid.New().String())
		})
		if err != nil {
			a.log.Error("failed to schedule cron job for rule", zap.String("rule_name", rule.Name), zap.Error(err))
			return err
		}
	}

	a.cron.Start()
	return nil
}

func (a *SwapAgent) Stop() {
	ctx := a.cron.Stop()
	a.log.Info("cron scheduler stopped, waiting for all jobs to complete.")
	<-ctx.Done()
	a.wg.Wait()
	a.log.Info("all jobs completed, swap agent shutting down.")
}
