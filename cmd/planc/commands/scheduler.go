package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ysato/planc/internal/scheduler"
	"github.com/ysato/planc/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "スケジューラ管理",
	Long: `月次評価のスケジューラを起動・管理します。

登録される作業:
- monthly_evaluation: 毎月14日 9時（購入日前日の評価）

Subcommands:
  start - スケジューラを起動
  list  - 登録済みの作業一覧
  run   - 作業を即時実行

Example:
  go run ./cmd/planc scheduler start
  go run ./cmd/planc scheduler run monthly_evaluation`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "スケジューラを起動",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "登録済みの作業一覧",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "作業を即時実行",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildScheduler wires the scheduler with all jobs registered.
func buildScheduler() (*scheduler.Scheduler, *services, error) {
	svc, err := buildServices(nil)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(svc.log)

	evalJob := jobs.NewMonthlyEvaluationJob(svc.eval, svc.notifier, svc.cfg, svc.log)
	if err := sched.AddJob(evalJob); err != nil {
		return nil, nil, fmt.Errorf("add job: %w", err)
	}

	return sched, svc, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, svc, err := buildScheduler()
	if err != nil {
		return err
	}

	if !svc.cfg.Scheduler.Enabled {
		return fmt.Errorf("scheduler is disabled (SCHEDULER_ENABLED=false)")
	}

	sched.Start()
	defer sched.Stop()

	fmt.Println("Scheduler running. Press Ctrl+C to stop")
	for _, name := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", name)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, _, err := buildScheduler()
	if err != nil {
		return err
	}

	for _, name := range sched.GetAllJobs() {
		fmt.Println(name)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	sched, _, err := buildScheduler()
	if err != nil {
		return err
	}

	jobName := args[0]
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	fmt.Printf("Job %s started\n", jobName)

	// Wait for the job to record a result before exiting.
	for {
		time.Sleep(200 * time.Millisecond)

		latest, err := sched.LatestResult(jobName)
		if err != nil {
			return err
		}
		if latest != nil {
			if !latest.Success {
				return fmt.Errorf("job failed: %s", latest.Error)
			}
			fmt.Printf("Job %s completed in %s\n", jobName, latest.Duration)
			return nil
		}
	}
}
