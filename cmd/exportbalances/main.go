package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/coinbase-samples/entangler-swap-go/core"
	"github.com/coinbase-samples/entangler-swap-go/model"
	"github.com/coinbase-samples/entangler-swap-go/utils"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := utils.ReadConfig(configPath)
	if err != nil {
		fmt.Printf("error reading config: %v\n", err)
		return
	}

	ledger, err := utils.NewLedger(config.Accounts)
	if err != nil {
		fmt.Printf("error building ledger: %v\n", err)
		return
	}

	now := time.Now()
	filename := fmt.Sprintf("balances_%s.csv", now.Format("20060102-150405"))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("error creating CSV file: %v\n", err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writeBalances(writer, config, ledger.Snapshot()); err != nil {
		fmt.Printf("error writing balances: %v\n", err)
		return
	}
	if err := writeEntanglerStates(writer, config, now.Unix()); err != nil {
		fmt.Printf("error writing entangler states: %v\n", err)
		return
	}

	fmt.Printf("balances have been successfully exported to %s\n", filename)
}

func writeBalances(writer *csv.Writer, config *model.Config, balances []model.TokenBalance) error {
	decimals := mintDecimals(config)

	if err := writer.Write([]string{"Account", "Mint", "Amount", "UiAmount"}); err != nil {
		return err
	}
	for _, balance := range balances {
		if err := writer.Write([]string{
			balance.Account,
			balance.Mint,
			strconv.FormatUint(balance.Amount, 10),
			core.FormatUiAmount(balance.Amount, decimals[balance.Mint]),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeEntanglerStates(writer *csv.Writer, config *model.Config, now int64) error {
	if err := writer.Write([]string{"Entangler", "ParentMint", "ParentState", "ChildMint", "ChildState"}); err != nil {
		return err
	}
	for _, entangler := range config.Entanglers {
		if err := writer.Write([]string{
			entangler.Name,
			entangler.Parent.Mint,
			string(core.EntanglerState(entangler.Parent, now)),
			entangler.Child.Mint,
			string(core.EntanglerState(entangler.Child, now)),
		}); err != nil {
			return err
		}
	}
	return nil
}

// mintDecimals maps every entangled mint to its decimals. Unknown mints format
// as raw amounts.
func mintDecimals(config *model.Config) map[string]int32 {
	decimals := make(map[string]int32)
	for _, entangler := range config.Entanglers {
		decimals[entangler.Parent.Mint] = entangler.Parent.Decimals
		decimals[entangler.Child.Mint] = entangler.Child.Decimals
	}
	return decimals
}
