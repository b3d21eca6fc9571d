package model

type Config struct {
	Daemon     DaemonConfig `yaml:"daemon"`
	Entanglers []Entangler  `yaml:"entanglers"`
	Accounts   []Account    `yaml:"accounts"`
	Rules      []Rule       `yaml:"rules"`
}

type DaemonConfig struct {
	ContextTimeoutDuration int `yaml:"context_timeout_duration"`
}

// Entangler links a parent mint to a child mint. Each side is gated by its own
// go-live and freeze times.
type Entangler struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"` // Optional
	Parent      EntanglerConfig `yaml:"parent" json:"parent"`
	Child       EntanglerConfig `yaml:"child" json:"child"`
}

type EntanglerConfig struct {
	Mint           string `yaml:"mint" json:"mint"`
	Decimals       int32  `yaml:"decimals" json:"decimals"`
	StorageAccount string `yaml:"storage_account" json:"storage_account"`
	GoLiveTime     int64  `yaml:"go_live_time" json:"go_live_time"`
	FreezeSwapTime *int64 `yaml:"freeze_swap_time" json:"freeze_swap_time"` // Optional, nil means never frozen
}

type Account struct {
	Name   string `yaml:"name" json:"name"`
	Mint   string `yaml:"mint" json:"mint"`
	Amount uint64 `yaml:"amount" json:"amount"`
}

type Rule struct {
	Name               string  `yaml:"name" json:"name"`
	Description        string  `yaml:"description" json:"description"` // Optional
	Schedule           string  `yaml:"schedule" json:"schedule"`
	Entangler          string  `yaml:"entangler" json:"entangler"`
	Direction          string  `yaml:"direction" json:"direction"`
	SourceAccount      string  `yaml:"source_account" json:"source_account"`
	DestinationAccount string  `yaml:"destination_account" json:"destination_account"`
	Amount             *uint64 `yaml:"amount" json:"amount"`
	All                *bool   `yaml:"all" json:"all"`
}

const (
	ParentToChild SwapDirection = "parent_to_child"
	ChildToParent SwapDirection = "child_to_parent"
)

type SwapDirection string

// TokenBalance is a read-only view of one token account at call time.
type TokenBalance struct {
	Account string
	Mint    string
	Amount  uint64
}

// SwapAmount is the quantity a resolved swap moves on both legs.
type SwapAmount struct {
	Amount uint64
}

// SwapRequest is either an exact amount or a request to swap everything the
// balances allow. The zero value is malformed.
type SwapRequest struct {
	amount uint64
	mode   swapMode
}

type swapMode uint8

const (
	modeUnset swapMode = iota
	modeExact
	modeAll
)

func ExactAmount(amount uint64) SwapRequest {
	return SwapRequest{amount: amount, mode: modeExact}
}

func All() SwapRequest {
	return SwapRequest{mode: modeAll}
}

func (r SwapRequest) IsAll() bool {
	return r.mode == modeAll
}

// Amount returns the requested quantity and whether the request is an exact one.
func (r SwapRequest) Amount() (uint64, bool) {
	return r.amount, r.mode == modeExact
}

func (r SwapRequest) Valid() bool {
	return r.mode == modeExact || r.mode == modeAll
}

func (r SwapRequest) String() string {
	switch r.mode {
	case modeAll:
		return "all"
	case modeExact:
		return "exact"
	default:
		return "invalid"
	}
}

type SwapOrder struct {
	Entangler          string
	Direction          SwapDirection
	SourceAccount      string
	DestinationAccount string
	Request            SwapRequest
	OperationId        string
	RuleName           string
}

// Leg moves Amount of one mint from one account to another.
type Leg struct {
	From   string
	To     string
	Amount uint64
}

// Transfer is applied by the ledger as a unit: every leg or none.
type Transfer struct {
	IdempotencyKey string
	Legs           []Leg
}
