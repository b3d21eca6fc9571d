package core

import (
	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/pkg/errors"
)

var (
	ErrInvalidArgs              = errors.New("invalid args: either amount or all must be set")
	ErrParentNotLiveYet         = errors.New("parent entangler is not live yet")
	ErrChildNotLiveYet          = errors.New("child entangler is not live yet")
	ErrParentSwapFrozen         = errors.New("parent entangler swap is frozen")
	ErrChildSwapFrozen          = errors.New("child entangler swap is frozen")
	ErrTokenAccountAmountTooLow = errors.New("token account amount too low")
)

// IsRejection reports whether err is one of the resolver's rejection kinds.
func IsRejection(err error) bool {
	for _, rejection := range []error{
		ErrInvalidArgs,
		ErrParentNotLiveYet,
		ErrChildNotLiveYet,
		ErrParentSwapFrozen,
		ErrChildSwapFrozen,
		ErrTokenAccountAmountTooLow,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}

// ParseSwapRequest converts the optional amount/all pair used in config files
// into a SwapRequest. all=true takes precedence over a present amount.
func ParseSwapRequest(amount *uint64, all *bool) (model.SwapRequest, error) {
	if all != nil && *all {
		return model.All(), nil
	}
	if amount != nil {
		return model.ExactAmount(*amount), nil
	}
	return model.SwapRequest{}, ErrInvalidArgs
}

// Resolve decides whether a swap between the parent and child of an entangler
// may happen at now and returns the amount to move. base bounds what the
// receiving side can deliver, source is the account being drained.
//
// Resolve reads nothing but its arguments. For exact requests only base is
// checked; the source balance is enforced when the ledger moves the tokens.
func Resolve(
	parent model.EntanglerConfig,
	child model.EntanglerConfig,
	base model.TokenBalance,
	source model.TokenBalance,
	now int64,
	request model.SwapRequest) (model.SwapAmount, error) {

	if !request.Valid() {
		return model.SwapAmount{}, ErrInvalidArgs
	}

	if parent.GoLiveTime >= now {
		return model.SwapAmount{}, ErrParentNotLiveYet
	}

	if child.GoLiveTime >= now {
		return model.SwapAmount{}, ErrChildNotLiveYet
	}

	if isFrozen(parent, now) {
		return model.SwapAmount{}, ErrParentSwapFrozen
	}

	if isFrozen(child, now) {
		return model.SwapAmount{}, ErrChildSwapFrozen
	}

	if request.IsAll() {
		amount := source.Amount
		if base.Amount < amount {
			amount = base.Amount
		}
		return model.SwapAmount{Amount: amount}, nil
	}

	amount, _ := request.Amount()
	if base.Amount < amount {
		return model.SwapAmount{}, ErrTokenAccountAmountTooLow
	}

	return model.SwapAmount{Amount: amount}, nil
}

func isFrozen(config model.EntanglerConfig, now int64) bool {
	return config.FreezeSwapTime != nil && *config.FreezeSwapTime <= now
}

type State string

const (
	Pending State = "pending"
	Active  State = "active"
	Frozen  State = "frozen"
)

// EntanglerState reports where one side of an entangler sits at now. Frozen
// wins over Pending when a freeze time precedes go-live.
func EntanglerState(config model.EntanglerConfig, now int64) State {
	if isFrozen(config, now) {
		return Frozen
	}
	if config.GoLiveTime >= now {
		return Pending
	}
	return Active
}
