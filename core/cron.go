package core

import (
	"context"

	"github.com/coinbase-samples/entangler-swap-go/model"
	"go.uber.org/zap"
)

// ProcessRule runs one scheduled swap. Rejections are expected outcomes and
// are only logged.
func ProcessRule(ctx context.Context, swapper *Swapper, rule model.Rule, operationId string) {
	zap.L().Info("processing swap rule",
		zap.String("rule_name", rule.Name),
		zap.String("entangler", rule.Entangler),
		zap.String("operation_id", operationId),
	)

	request, err := ParseSwapRequest(rule.Amount, rule.All)
	if err != nil {
		zap.L().Error("invalid swap request in rule", zap.String("rule_name", rule.Name), zap.Error(err))
		return
	}

	order := model.SwapOrder{
		Entangler:          rule.Entangler,
		Direction:          model.SwapDirection(rule.Direction),
		SourceAccount:      rule.SourceAccount,
		DestinationAccount: rule.DestinationAccount,
		Request:            request,
		OperationId:        operationId,
		RuleName:           rule.Name,
	}

	if _, err := swapper.Swap(ctx, order); err != nil {
		if IsRejection(err) {
			return
		}
		zap.L().Error("failed to process swap rule",
			zap.String("rule_name", rule.Name),
			zap.String("operation_id", operationId),
			zap.Error(err),
		)
	}
}
