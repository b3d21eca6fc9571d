package core

import (
	"context"
	"time"

	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrUnknownEntangler = errors.New("unknown entangler")
	ErrUnknownDirection = errors.New("unknown swap direction")
	ErrWrongSourceMint  = errors.New("source account does not hold the swapped mint")
)

// Ledger reads balances and moves tokens. Transfer must apply all legs or none.
type Ledger interface {
	Balance(ctx context.Context, account string) (model.TokenBalance, error)
	Transfer(ctx context.Context, transfer model.Transfer) error
}

type Swapper struct {
	config *model.Config
	ledger Ledger
	clock  func() int64
	log    *zap.Logger
}

func NewSwapper(config *model.Config, ledger Ledger, log *zap.Logger) *Swapper {
	return &Swapper{
		config: config,
		ledger: ledger,
		clock:  func() int64 { return time.Now().Unix() },
		log:    log,
	}
}

// WithClock replaces the unix-seconds clock used to gate swaps.
func (s *Swapper) WithClock(clock func() int64) *Swapper {
	s.clock = clock
	return s
}

func findEntangler(config *model.Config, name string) (model.Entangler, error) {
	for _, entangler := range config.Entanglers {
		if entangler.Name == name {
			return entangler, nil
		}
	}
	return model.Entangler{}, errors.Wrap(ErrUnknownEntangler, name)
}

// sides returns the entangler side being given up and the side being received.
func sides(entangler model.Entangler, direction model.SwapDirection) (from, to model.EntanglerConfig, err error) {
	switch direction {
	case model.ParentToChild:
		return entangler.Parent, entangler.Child, nil
	case model.ChildToParent:
		return entangler.Child, entangler.Parent, nil
	}
	return model.EntanglerConfig{}, model.EntanglerConfig{}, errors.Wrap(ErrUnknownDirection, string(direction))
}

// Swap resolves order against current balances and, if allowed, moves the
// tokens: source into the giving side's storage, and the receiving side's
// storage into the destination account.
func (s *Swapper) Swap(ctx context.Context, order model.SwapOrder) (model.SwapAmount, error) {
	entangler, err := findEntangler(s.config, order.Entangler)
	if err != nil {
		return model.SwapAmount{}, err
	}

	from, to, err := sides(entangler, order.Direction)
	if err != nil {
		return model.SwapAmount{}, err
	}

	source, err := s.ledger.Balance(ctx, order.SourceAccount)
	if err != nil {
		return model.SwapAmount{}, errors.Wrap(err, "could not get source balance")
	}
	if source.Mint != from.Mint {
		return model.SwapAmount{}, errors.Wrapf(ErrWrongSourceMint, "account %s holds %s, expected %s", source.Account, source.Mint, from.Mint)
	}

	base, err := s.ledger.Balance(ctx, to.StorageAccount)
	if err != nil {
		return model.SwapAmount{}, errors.Wrap(err, "could not get storage balance")
	}

	now := s.clock()
	swapAmount, err := Resolve(entangler.Parent, entangler.Child, base, source, now, order.Request)
	if err != nil {
		s.log.Info("swap rejected",
			zap.String("entangler", entangler.Name),
			zap.String("direction", string(order.Direction)),
			zap.String("request", order.Request.String()),
			zap.Int64("now", now),
			zap.String("rule_name", order.RuleName),
			zap.String("operation_id", order.OperationId),
			zap.Error(err))
		return model.SwapAmount{}, err
	}

	if swapAmount.Amount == 0 {
		s.log.Info("nothing to swap",
			zap.String("entangler", entangler.Name),
			zap.String("source_account", source.Account),
			zap.String("rule_name", order.RuleName),
			zap.String("operation_id", order.OperationId))
		return swapAmount, nil
	}

	transfer := model.Transfer{
		IdempotencyKey: uuid.New().String(),
		Legs: []model.Leg{
			{From: order.SourceAccount, To: from.StorageAccount, Amount: swapAmount.Amount},
			{From: to.StorageAccount, To: order.DestinationAccount, Amount: swapAmount.Amount},
		},
	}

	if err := s.ledger.Transfer(ctx, transfer); err != nil {
		s.log.Error("could not execute swap",
			zap.String("entangler", entangler.Name),
			zap.String("rule_name", order.RuleName),
			zap.String("operation_id", order.OperationId),
			zap.Error(err))
		return model.SwapAmount{}, errors.Wrap(err, "could not execute swap")
	}

	s.log.Info("executed swap",
		zap.String("entangler", entangler.Name),
		zap.String("direction", string(order.Direction)),
		zap.String("amount", FormatUiAmount(swapAmount.Amount, from.Decimals)),
		zap.String("from_mint", from.Mint),
		zap.String("to_mint", to.Mint),
		zap.String("source_account", order.SourceAccount),
		zap.String("destination_account", order.DestinationAccount),
		zap.String("idempotency_key", transfer.IdempotencyKey),
		zap.String("rule_name", order.RuleName),
		zap.String("operation_id", order.OperationId))

	return swapAmount, nil
}
