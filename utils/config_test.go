package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coinbase-samples/entangler-swap-go/core"
	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	freeze := int64(1000)
	all := true

	expectedConfig := model.Config{
		Daemon: model.DaemonConfig{
			ContextTimeoutDuration: 7,
		},
		Entanglers: []model.Entangler{
			{
				Name:        "gold",
				Description: "GOLD <-> cGOLD entangled pair",
				Parent: model.EntanglerConfig{
					Mint:           "GOLD",
					Decimals:       6,
					StorageAccount: "gold_parent_storage",
					GoLiveTime:     100,
				},
				Child: model.EntanglerConfig{
					Mint:           "cGOLD",
					Decimals:       6,
					StorageAccount: "gold_child_storage",
					GoLiveTime:     100,
					FreezeSwapTime: &freeze,
				},
			},
		},
		Accounts: []model.Account{
			{Name: "gold_parent_storage", Mint: "GOLD", Amount: 0},
			{Name: "gold_child_storage", Mint: "cGOLD", Amount: 500},
			{Name: "treasury_gold", Mint: "GOLD", Amount: 300},
			{Name: "treasury_cgold", Mint: "cGOLD", Amount: 0},
		},
		Rules: []model.Rule{
			{
				Name:               "daily_gold_entangle",
				Description:        "Swap all treasury GOLD into cGOLD",
				Schedule:           "0 0 20 * * 1-5",
				Entangler:          "gold",
				Direction:          "parent_to_child",
				SourceAccount:      "treasury_gold",
				DestinationAccount: "treasury_cgold",
				All:                &all,
			},
		},
	}

	config, err := ReadConfig(filepath.Join("testdata", "test_config.yaml"))
	require.NoError(t, err, "config should be loaded without errors")
	assert.Equal(t, expectedConfig, *config, "loaded config should match expected config")
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join("testdata", "does_not_exist.yaml"))
	assert.Error(t, err)
}

func loadTestConfig(t *testing.T) *model.Config {
	t.Helper()
	config, err := ReadConfig(filepath.Join("testdata", "test_config.yaml"))
	require.NoError(t, err)
	return config
}

func TestValidateConfig(t *testing.T) {
	amount := uint64(10)

	tests := []struct {
		name    string
		mutate  func(config *model.Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(config *model.Config) {},
		},
		{
			name: "duplicate rule name",
			mutate: func(config *model.Config) {
				config.Rules = append(config.Rules, config.Rules[0])
			},
			wantErr: "duplicate rule name: daily_gold_entangle",
		},
		{
			name: "missing schedule",
			mutate: func(config *model.Config) {
				config.Rules[0].Schedule = ""
			},
			wantErr: "schedule not specified for rule: daily_gold_entangle",
		},
		{
			name: "unknown entangler",
			mutate: func(config *model.Config) {
				config.Rules[0].Entangler = "silver"
			},
			wantErr: "entangler 'silver' in rule 'daily_gold_entangle' does not exist",
		},
		{
			name: "unknown direction",
			mutate: func(config *model.Config) {
				config.Rules[0].Direction = "sideways"
			},
			wantErr: "unknown direction 'sideways' in rule 'daily_gold_entangle'",
		},
		{
			name: "source holds wrong mint",
			mutate: func(config *model.Config) {
				config.Rules[0].Direction = string(model.ChildToParent)
			},
			wantErr: "source of rule 'daily_gold_entangle': account 'treasury_gold' holds mint 'GOLD', expected 'cGOLD'",
		},
		{
			name: "unknown destination account",
			mutate: func(config *model.Config) {
				config.Rules[0].DestinationAccount = "nobody"
			},
			wantErr: "destination of rule 'daily_gold_entangle': account 'nobody' does not exist",
		},
		{
			name: "neither amount nor all",
			mutate: func(config *model.Config) {
				config.Rules[0].All = nil
			},
			wantErr: "rule 'daily_gold_entangle': " + core.ErrInvalidArgs.Error(),
		},
		{
			name: "exact amount",
			mutate: func(config *model.Config) {
				config.Rules[0].All = nil
				config.Rules[0].Amount = &amount
			},
		},
		{
			name: "duplicate account",
			mutate: func(config *model.Config) {
				config.Accounts = append(config.Accounts, config.Accounts[0])
			},
			wantErr: "duplicate account name: gold_parent_storage",
		},
		{
			name: "duplicate entangler",
			mutate: func(config *model.Config) {
				config.Entanglers = append(config.Entanglers, config.Entanglers[0])
			},
			wantErr: "duplicate entangler name: gold",
		},
		{
			name: "same mint on both sides",
			mutate: func(config *model.Config) {
				config.Entanglers[0].Child.Mint = "GOLD"
			},
			wantErr: "entangler 'gold' uses mint 'GOLD' for both parent and child",
		},
		{
			name: "storage holds wrong mint",
			mutate: func(config *model.Config) {
				config.Entanglers[0].Parent.StorageAccount = "treasury_cgold"
			},
			wantErr: "parent storage of entangler 'gold': account 'treasury_cgold' holds mint 'cGOLD', expected 'GOLD'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := loadTestConfig(t)
			tc.mutate(config)

			err := validateConfig(config)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestReadConfigRejectsInvalidFile(t *testing.T) {
	config := loadTestConfig(t)
	config.Rules[0].All = nil

	bytes, err := yaml.Marshal(config)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, bytes, 0o600))

	_, err = ReadConfig(path)
	assert.ErrorIs(t, err, core.ErrInvalidArgs)
}
