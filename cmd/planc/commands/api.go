package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ysato/planc/internal/api"
	"github.com/ysato/planc/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "APIサーバーを起動",
	Long: `REST APIサーバーを起動します。

Endpoints:
  GET  /health          - Health check
  GET  /api/allocation  - 通常配分の計算
  POST /api/evaluate    - 月次評価の実行
  POST /api/rebalance   - リバランス計画の計算

Example:
  go run ./cmd/planc api
  go run ./cmd/planc api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "APIサーバーのポート（省略時は設定値）")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	svc, err := buildServices(nil)
	if err != nil {
		return err
	}

	if apiPort != "" {
		svc.cfg.Port = apiPort
	}

	planHandler := handlers.NewPlanHandler(svc.eval, svc.engine, svc.base, svc.notifier, svc.cfg, svc.log)
	router := api.NewRouter(planHandler, svc.log)
	server := api.New(svc.cfg, svc.log, router)

	go func() {
		if err := server.Start(); err != nil {
			svc.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", svc.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
