package utils

import (
	"os"

	"github.com/coinbase-samples/entangler-swap-go/core"
	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

func ReadConfig(filename string) (*model.Config, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := &model.Config{}

	if err = yaml.Unmarshal(bytes, config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *model.Config) error {
	accounts, err := checkAccounts(config)
	if err != nil {
		return err
	}

	entanglers, err := checkEntanglers(config, accounts)
	if err != nil {
		return err
	}

	return checkRules(config, accounts, entanglers)
}

func checkAccounts(config *model.Config) (map[string]model.Account, error) {
	accounts := make(map[string]model.Account)
	for _, account := range config.Accounts {
		if account.Name == "" {
			return nil, errors.New("account name not specified")
		}
		if account.Mint == "" {
			return nil, errors.Errorf("mint not specified for account: %s", account.Name)
		}
		if _, exists := accounts[account.Name]; exists {
			return nil, errors.Errorf("duplicate account name: %s", account.Name)
		}
		accounts[account.Name] = account
	}
	return accounts, nil
}

func checkEntanglers(config *model.Config, accounts map[string]model.Account) (map[string]model.Entangler, error) {
	entanglers := make(map[string]model.Entangler)
	for _, entangler := range config.Entanglers {
		if _, exists := entanglers[entangler.Name]; exists {
			return nil, errors.Errorf("duplicate entangler name: %s", entangler.Name)
		}
		if entangler.Parent.Mint == entangler.Child.Mint {
			return nil, errors.Errorf("entangler '%s' uses mint '%s' for both parent and child", entangler.Name, entangler.Parent.Mint)
		}
		sides := []struct {
			name   string
			config model.EntanglerConfig
		}{{"parent", entangler.Parent}, {"child", entangler.Child}}
		for _, s := range sides {
			side, sideConfig := s.name, s.config
			if sideConfig.Mint == "" {
				return nil, errors.Errorf("%s mint not specified for entangler: %s", side, entangler.Name)
			}
			if sideConfig.Decimals < 0 {
				return nil, errors.Errorf("%s decimals of entangler '%s' must not be negative", side, entangler.Name)
			}
			if err := checkAccountMint(accounts, sideConfig.StorageAccount, sideConfig.Mint); err != nil {
				return nil, errors.Wrapf(err, "%s storage of entangler '%s'", side, entangler.Name)
			}
		}
		entanglers[entangler.Name] = entangler
	}
	return entanglers, nil
}

func checkRules(config *model.Config, accounts map[string]model.Account, entanglers map[string]model.Entangler) error {
	ruleNames := make(map[string]bool)
	for _, rule := range config.Rules {
		if _, exists := ruleNames[rule.Name]; exists {
			return errors.Errorf("duplicate rule name: %s", rule.Name)
		}
		ruleNames[rule.Name] = true

		if rule.Schedule == "" {
			return errors.Errorf("schedule not specified for rule: %s", rule.Name)
		}

		entangler, exists := entanglers[rule.Entangler]
		if !exists {
			return errors.Errorf("entangler '%s' in rule '%s' does not exist", rule.Entangler, rule.Name)
		}

		var sourceMint, destinationMint string
		switch model.SwapDirection(rule.Direction) {
		case model.ParentToChild:
			sourceMint, destinationMint = entangler.Parent.Mint, entangler.Child.Mint
		case model.ChildToParent:
			sourceMint, destinationMint = entangler.Child.Mint, entangler.Parent.Mint
		default:
			return errors.Errorf("unknown direction '%s' in rule '%s'", rule.Direction, rule.Name)
		}

		if err := checkAccountMint(accounts, rule.SourceAccount, sourceMint); err != nil {
			return errors.Wrapf(err, "source of rule '%s'", rule.Name)
		}
		if err := checkAccountMint(accounts, rule.DestinationAccount, destinationMint); err != nil {
			return errors.Wrapf(err, "destination of rule '%s'", rule.Name)
		}

		if _, err := core.ParseSwapRequest(rule.Amount, rule.All); err != nil {
			return errors.Wrapf(err, "rule '%s'", rule.Name)
		}
	}
	return nil
}

func checkAccountMint(accounts map[string]model.Account, name, mint string) error {
	account, exists := accounts[name]
	if !exists {
		return errors.Errorf("account '%s' does not exist", name)
	}
	if account.Mint != mint {
		return errors.Errorf("account '%s' holds mint '%s', expected '%s'", name, account.Mint, mint)
	}
	return nil
}
