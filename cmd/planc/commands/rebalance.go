package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/rebalance"
	"github.com/ysato/planc/internal/report"
)

// rebalanceCmd represents the rebalance command
var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "リバランス計画を計算",
	Long: `現在の保有額から目標比率との乖離を評価し、購入のみで
バランスを戻す計画を計算します。売却は行いません。

戦略:
  budget_bounded - 月次予算内で配分を傾ける（数ヶ月かけて解消）
  extra_capital  - 通常配分に追加資金を上乗せ（一括解消を狙う）

保有額は fund=amount のカンマ区切りで指定します。
ファンド: jp_stock jp_reit jp_bond global_stock us_stock os_reit os_bond

Example:
  go run ./cmd/planc rebalance --holdings jp_stock=50000,jp_reit=50000,jp_bond=50000,global_stock=500000,us_stock=150000,os_reit=100000,os_bond=100000
  go run ./cmd/planc rebalance --holdings ... --strategy extra_capital --extra-capital 100000`,
	RunE: runRebalance,
}

var (
	rebalanceHoldings     string
	rebalanceStrategy     string
	rebalanceBudget       int64
	rebalanceMinPurchase  int64
	rebalanceExtraCapital int64
)

func init() {
	rootCmd.AddCommand(rebalanceCmd)

	rebalanceCmd.Flags().StringVar(&rebalanceHoldings, "holdings", "", "保有額（fund=amount,... 形式、必須）")
	rebalanceCmd.Flags().StringVar(&rebalanceStrategy, "strategy", string(contracts.StrategyBudgetBounded), "戦略（budget_bounded|extra_capital）")
	rebalanceCmd.Flags().Int64Var(&rebalanceBudget, "budget", 0, "基準投資額（円、省略時は設定値）")
	rebalanceCmd.Flags().Int64Var(&rebalanceMinPurchase, "min-purchase", 0, "ファンドあたりの最低購入額（円、省略時は設定値）")
	rebalanceCmd.Flags().Int64Var(&rebalanceExtraCapital, "extra-capital", 0, "追加投入資金（円）")
	rebalanceCmd.MarkFlagRequired("holdings")
}

func runRebalance(cmd *cobra.Command, args []string) error {
	svc, err := buildServices(nil)
	if err != nil {
		return err
	}

	holdings, err := parseHoldings(rebalanceHoldings)
	if err != nil {
		return err
	}

	req := rebalance.Request{
		Holdings:     holdings,
		BaseBudget:   contracts.Money(rebalanceBudget),
		Strategy:     contracts.Strategy(rebalanceStrategy),
		MinPurchase:  contracts.Money(rebalanceMinPurchase),
		ExtraCapital: contracts.Money(rebalanceExtraCapital),
	}
	if req.BaseBudget == 0 {
		req.BaseBudget = contracts.Money(svc.cfg.BaseBudget)
	}
	if req.MinPurchase == 0 {
		req.MinPurchase = contracts.Money(svc.cfg.MinPurchase)
	}

	plan, err := svc.engine.Plan(req)
	if err != nil {
		return fmt.Errorf("rebalance: %w", err)
	}

	fmt.Print(report.Rebalance(plan))
	return nil
}

// parseHoldings parses "fund=amount,fund=amount" into holdings.
func parseHoldings(raw string) (contracts.Holdings, error) {
	holdings := make(contracts.Holdings)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid holdings entry %q, want fund=amount", pair)
		}

		fund := contracts.FundID(strings.TrimSpace(parts[0]))
		if !fund.Valid() {
			return nil, fmt.Errorf("%w: %s", contracts.ErrUnknownFund, fund)
		}

		amount, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", pair, err)
		}

		holdings[fund] = contracts.Money(amount)
	}

	return holdings, nil
}
