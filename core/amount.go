package core

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// UiAmount scales a raw token amount by the mint's decimals.
func UiAmount(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals)
}

func FormatUiAmount(amount uint64, decimals int32) string {
	return UiAmount(amount, decimals).String()
}
