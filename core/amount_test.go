package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUiAmount(t *testing.T) {
	tests := []struct {
		amount   uint64
		decimals int32
		expected string
	}{
		{amount: 0, decimals: 6, expected: "0"},
		{amount: 1, decimals: 6, expected: "0.000001"},
		{amount: 1500000, decimals: 6, expected: "1.5"},
		{amount: 42, decimals: 0, expected: "42"},
		{amount: ^uint64(0), decimals: 9, expected: "18446744073.709551615"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatUiAmount(tc.amount, tc.decimals))
		})
	}
}
