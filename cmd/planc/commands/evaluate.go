package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/external/buffett"
	"github.com/ysato/planc/internal/external/line"
	"github.com/ysato/planc/internal/report"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "月次投資評価を実行",
	Long: `市場データを取得して暴落判定を行い、今月の投資配分を計算します。

この命令は:
- VIX・バフェット指数・3ヶ月騰落率を取得
- 国内/海外それぞれの暴落判定
- 通常配分と暴落時の追加配分を計算

バフェット指数は --buffett-home / --buffett-foreign で手動入力できます。
手動入力があればスクレイピングは行いません。

Example:
  go run ./cmd/planc evaluate
  go run ./cmd/planc evaluate --budget 300000 --notify
  go run ./cmd/planc evaluate --buffett-home 120 --buffett-foreign 180`,
	RunE: runEvaluate,
}

var (
	evalBudget         int64
	evalNotify         bool
	evalBuffettHome    float64
	evalBuffettForeign float64
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().Int64Var(&evalBudget, "budget", 0, "基準投資額（円、省略時は設定値）")
	evaluateCmd.Flags().BoolVar(&evalNotify, "notify", false, "結果をLINEに送信")
	evaluateCmd.Flags().Float64Var(&evalBuffettHome, "buffett-home", 0, "国内バフェット指数の手動入力（%）")
	evaluateCmd.Flags().Float64Var(&evalBuffettForeign, "buffett-foreign", 0, "海外バフェット指数の手動入力（%）")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	var manual contracts.ValuationSource
	if evalBuffettHome > 0 && evalBuffettForeign > 0 {
		manual = buffett.NewStatic(evalBuffettHome, evalBuffettForeign)
	}

	svc, err := buildServices(manual)
	if err != nil {
		return err
	}

	budget := contracts.Money(evalBudget)
	if budget == 0 {
		budget = contracts.Money(svc.cfg.BaseBudget)
	}

	ctx := context.Background()
	result, err := svc.eval.Evaluate(ctx, budget)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	fmt.Print(report.Evaluation(result))

	if evalNotify {
		if err := svc.notifier.Send(ctx, report.NotifyMessage(result)); err != nil {
			if errors.Is(err, line.ErrNotConfigured) {
				fmt.Println("\nLINE通知: トークン未設定のためスキップしました")
			} else {
				return fmt.Errorf("send notification: %w", err)
			}
		} else {
			fmt.Println("\nLINE通知を送信しました")
		}
	}

	return nil
}
