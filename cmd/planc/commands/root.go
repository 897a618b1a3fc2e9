package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planc",
	Short: "月次投資プランC - 暴落対応型の積立投資計算機",
	Long: `月次投資プランC CLI

毎月の積立配分と、暴落時の追加投資・リバランスを計算します。
市場データを取得して暴落判定を行い、7ファンドへの配分を出力します。

Usage:
  go run ./cmd/planc [command]

Examples:
  go run ./cmd/planc evaluate
  go run ./cmd/planc rebalance --holdings jp_stock=50000,global_stock=500000
  go run ./cmd/planc api
  go run ./cmd/planc scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
