package utils

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/pkg/errors"
)

var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrDuplicateAccount  = errors.New("duplicate account")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMintMismatch      = errors.New("mint mismatch between accounts")
	ErrBalanceOverflow   = errors.New("balance overflow")
)

// Ledger holds token balances in memory and applies multi-leg transfers
// atomically. It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*model.TokenBalance
	applied  map[string]struct{}
}

func NewLedger(accounts []model.Account) (*Ledger, error) {
	l := &Ledger{
		accounts: make(map[string]*model.TokenBalance, len(accounts)),
		applied:  make(map[string]struct{}),
	}

	for _, account := range accounts {
		if _, exists := l.accounts[account.Name]; exists {
			return nil, errors.Wrap(ErrDuplicateAccount, account.Name)
		}
		l.accounts[account.Name] = &model.TokenBalance{
			Account: account.Name,
			Mint:    account.Mint,
			Amount:  account.Amount,
		}
	}

	return l, nil
}

func (l *Ledger) Balance(ctx context.Context, account string) (model.TokenBalance, error) {
	if err := ctx.Err(); err != nil {
		return model.TokenBalance{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, exists := l.accounts[account]
	if !exists {
		return model.TokenBalance{}, errors.Wrap(ErrUnknownAccount, account)
	}
	return *balance, nil
}

// Transfer applies every leg of transfer or none of them. A transfer whose
// idempotency key was already applied is a no-op.
func (l *Ledger) Transfer(ctx context.Context, transfer model.Transfer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if transfer.IdempotencyKey != "" {
		if _, done := l.applied[transfer.IdempotencyKey]; done {
			return nil
		}
	}

	pending := make(map[string]uint64)
	current := func(name string) uint64 {
		if amount, ok := pending[name]; ok {
			return amount
		}
		return l.accounts[name].Amount
	}

	for _, leg := range transfer.Legs {
		from, exists := l.accounts[leg.From]
		if !exists {
			return errors.Wrap(ErrUnknownAccount, leg.From)
		}
		to, exists := l.accounts[leg.To]
		if !exists {
			return errors.Wrap(ErrUnknownAccount, leg.To)
		}
		if from.Mint != to.Mint {
			return errors.Wrapf(ErrMintMismatch, "%s (%s) -> %s (%s)", from.Account, from.Mint, to.Account, to.Mint)
		}

		fromAmount := current(leg.From)
		if fromAmount < leg.Amount {
			return errors.Wrapf(ErrInsufficientFunds, "account %s holds %d, needs %d", leg.From, fromAmount, leg.Amount)
		}
		pending[leg.From] = fromAmount - leg.Amount

		toAmount := current(leg.To)
		if toAmount > math.MaxUint64-leg.Amount {
			return errors.Wrap(ErrBalanceOverflow, leg.To)
		}
		pending[leg.To] = toAmount + leg.Amount
	}

	for name, amount := range pending {
		l.accounts[name].Amount = amount
	}
	if transfer.IdempotencyKey != "" {
		l.applied[transfer.IdempotencyKey] = struct{}{}
	}

	return nil
}

// Snapshot returns a copy of every balance, sorted by mint then account.
func (l *Ledger) Snapshot() []model.TokenBalance {
	l.mu.Lock()
	defer l.mu.Unlock()

	balances := make([]model.TokenBalance, 0, len(l.accounts))
	for _, balance := range l.accounts {
		balances = append(balances, *balance)
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Mint != balances[j].Mint {
			return balances[i].Mint < balances[j].Mint
		}
		return balances[i].Account < balances[j].Account
	})
	return balances
}
