package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ysato/planc/internal/external/line"
)

// notifyCmd represents the notify command
var notifyCmd = &cobra.Command{
	Use:   "notify [message]",
	Short: "LINE通知の送信テスト",
	Long: `LINE Notifyの設定を確認するためにテストメッセージを送信します。

Example:
  go run ./cmd/planc notify "テスト送信"`,
	Args: cobra.ExactArgs(1),
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	svc, err := buildServices(nil)
	if err != nil {
		return err
	}

	if err := svc.notifier.Send(context.Background(), args[0]); err != nil {
		if errors.Is(err, line.ErrNotConfigured) {
			return fmt.Errorf("LINE_NOTIFY_TOKEN is not set")
		}
		return fmt.Errorf("send notification: %w", err)
	}

	fmt.Println("Notification sent")
	return nil
}
