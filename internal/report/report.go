package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ysato/planc/internal/contracts"
)

// fundLabels maps fund identifiers to display names.
var fundLabels = map[contracts.FundID]string{
	contracts.FundJPStock:     "国内株式",
	contracts.FundJPReit:      "国内リート",
	contracts.FundJPBond:      "国内債券",
	contracts.FundGlobalStock: "全世界株式",
	contracts.FundUSStock:     "米国株式",
	contracts.FundOSReit:      "海外リート",
	contracts.FundOSBond:      "海外債券",
}

var patternLabels = map[contracts.CrashPattern]string{
	contracts.PatternNone:        "暴落なし（通常投資）",
	contracts.PatternHomeOnly:    "国内のみ暴落",
	contracts.PatternForeignOnly: "海外のみ暴落",
	contracts.PatternBoth:        "両市場暴落",
}

func yen(m contracts.Money) string {
	s := fmt.Sprintf("%d", m)
	if m < 0 {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if m < 0 {
		return "-" + b.String() + "円"
	}
	return b.String() + "円"
}

// Evaluation renders the full monthly evaluation as a text report.
func Evaluation(result *contracts.EvaluationResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "評価日: %s\n", result.Date.Format("2006-01-02"))
	fmt.Fprintf(&sb, "判定: %s\n", patternLabels[result.Pattern])

	if result.Readings.VIX != nil {
		fmt.Fprintf(&sb, "VIX: %.1f\n", *result.Readings.VIX)
	}
	for _, g := range contracts.Markets {
		if v, ok := result.Readings.Valuations[g]; ok {
			fmt.Fprintf(&sb, "バフェット指数(%s): %.1f%%\n", marketLabel(g), v)
		}
		if c := result.Readings.IndexChange[g]; c != nil {
			fmt.Fprintf(&sb, "3ヶ月騰落率(%s): %+.1f%%\n", marketLabel(g), *c)
		}
	}
	sb.WriteByte('\n')

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ファンド\t通常\t追加\t合計")
	for _, f := range contracts.AllFunds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			fundLabels[f],
			yen(result.Regular.Funds[f]),
			yen(result.Additional.Funds[f]),
			yen(result.FundTotal(f)))
	}
	for _, g := range contracts.Markets {
		fmt.Fprintf(w, "%s小計\t%s\t%s\t%s\n",
			marketLabel(g),
			yen(result.Regular.Funds.MarketTotal(g)),
			yen(result.Additional.Funds.MarketTotal(g)),
			yen(result.Regular.Funds.MarketTotal(g)+result.Additional.Funds.MarketTotal(g)))
	}
	fmt.Fprintf(w, "合計\t%s\t%s\t%s\n",
		yen(result.Regular.Funds.Total()),
		yen(result.Additional.Total()),
		yen(result.TotalInvestment))
	w.Flush()

	for _, g := range contracts.Markets {
		if crashFund, ok := result.Additional.CrashFunds[g]; ok {
			fmt.Fprintf(&sb, "暴落対応資金(%s): %s\n", marketLabel(g), yen(crashFund))
		}
	}

	split := result.Regular.GlobalStock
	addSplit := result.Additional.GlobalStock
	fmt.Fprintf(&sb, "\n全世界株式の内訳: つみたて枠 %s / 成長枠 %s\n",
		yen(split.Tsumitate+addSplit.Tsumitate),
		yen(split.Growth+addSplit.Growth))

	if result.IsDegraded() {
		sb.WriteString("\n注意: 一部の指標が取得できず、安全側（暴落なし）で判定しています\n")
		for _, notice := range result.Degraded {
			fmt.Fprintf(&sb, "  - %s\n", notice)
		}
	}

	return sb.String()
}

// Rebalance renders a rebalancing plan as a text report.
func Rebalance(plan *contracts.RebalancePlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "保有総額: %s\n", yen(plan.Total))
	fmt.Fprintf(&sb, "判定: %s\n\n", classificationLabel(plan.Assessment.Classification))

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ファンド\t現在\t目標\t乖離\t次回購入")
	for _, f := range contracts.AllFunds {
		b := plan.Balances[f]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			fundLabels[f], yen(b.Current), yen(b.Target), yen(b.Delta), yen(plan.NextPeriod[f]))
	}
	fmt.Fprintf(w, "合計\t%s\t\t\t%s\n", yen(plan.Total), yen(plan.TotalInvestment))
	w.Flush()

	if plan.RecommendedMonths > 0 {
		fmt.Fprintf(&sb, "\n推奨継続期間: %dヶ月\n", plan.RecommendedMonths)
		for _, f := range contracts.AllFunds {
			if months, ok := plan.FundMonths[f]; ok {
				fmt.Fprintf(&sb, "  %s: %dヶ月\n", fundLabels[f], months)
			}
		}
	}
	for _, f := range plan.Unclosable {
		fmt.Fprintf(&sb, "注意: %s はこの配分では乖離を解消できません\n", fundLabels[f])
	}

	return sb.String()
}

// NotifyMessage builds the short push-notification text for an evaluation.
func NotifyMessage(result *contracts.EvaluationResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n【月次投資評価 %s】\n", result.Date.Format("2006-01-02"))
	fmt.Fprintf(&sb, "%s\n", patternLabels[result.Pattern])
	fmt.Fprintf(&sb, "投資総額: %s\n", yen(result.TotalInvestment))

	if !result.Additional.Empty() {
		sb.WriteString("追加投資:\n")
		for _, f := range contracts.AllFunds {
			if amount := result.Additional.Funds[f]; amount > 0 {
				fmt.Fprintf(&sb, "  %s %s\n", fundLabels[f], yen(amount))
			}
		}
	}
	if result.IsDegraded() {
		sb.WriteString("※一部指標が取得できませんでした\n")
	}

	return sb.String()
}

func marketLabel(g contracts.MarketGroup) string {
	if g == contracts.MarketHome {
		return "国内"
	}
	return "海外"
}

func classificationLabel(c contracts.Classification) string {
	switch c {
	case contracts.ClassHomeShort:
		return "国内側が不足"
	case contracts.ClassForeignShort:
		return "海外側が不足"
	default:
		return "バランス良好"
	}
}
