package commands

import (
	"fmt"

	"github.com/ysato/planc/internal/allocation"
	"github.com/ysato/planc/internal/contracts"
	"github.com/ysato/planc/internal/evaluation"
	"github.com/ysato/planc/internal/external/buffett"
	"github.com/ysato/planc/internal/external/line"
	"github.com/ysato/planc/internal/external/market"
	"github.com/ysato/planc/internal/rebalance"
	"github.com/ysato/planc/internal/signals"
	"github.com/ysato/planc/pkg/config"
	"github.com/ysato/planc/pkg/httputil"
	"github.com/ysato/planc/pkg/logger"
)

// services bundles the wired application components for the CLI commands.
type services struct {
	cfg      *config.Config
	log      *logger.Logger
	base     *allocation.BaseAllocator
	crash    *allocation.CrashAllocator
	engine   *rebalance.Engine
	eval     *evaluation.Service
	notifier *line.Client
}

// buildServices loads the config and wires the full evaluation pipeline.
// When manual valuations are given they replace the indicator scraper.
func buildServices(manualValuation contracts.ValuationSource) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	planCfg := contracts.DefaultPlanConfig()

	// External pages throttle aggressive callers.
	httpClient := httputil.New(log).WithRateLimit(2, 1)

	marketClient := market.NewClient(httpClient, log, cfg.Market.BaseURL)

	valuation := manualValuation
	if valuation == nil {
		valuation = buffett.NewClient(httpClient, log, cfg.Valuation.HomeURL, cfg.Valuation.ForeignURL)
	}

	builder := signals.NewBuilder(marketClient, valuation,
		signals.Thresholds{
			VolatilityHigh: cfg.Thresholds.VolatilityHigh,
			ValuationLow:   cfg.Thresholds.ValuationLow,
			DrawdownSevere: cfg.Thresholds.DrawdownSevere,
		},
		signals.Symbols{
			VIX:     cfg.Market.VIXSymbol,
			Home:    cfg.Market.HomeSymbol,
			Foreign: cfg.Market.ForeignSymbol,
		},
		log)

	base := allocation.NewBaseAllocator(planCfg, log)
	crash := allocation.NewCrashAllocator(planCfg, log)

	return &services{
		cfg:      cfg,
		log:      log,
		base:     base,
		crash:    crash,
		engine:   rebalance.NewEngine(planCfg, base, log),
		eval:     evaluation.NewService(builder, base, crash, log),
		notifier: line.NewClient(httputil.New(log), log, cfg.LINE.APIURL, cfg.LINE.Token),
	}, nil
}
