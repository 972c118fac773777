package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"binance-futures-cli/internal/api"
	"binance-futures-cli/internal/config"
	"binance-futures-cli/internal/core"
	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogPath)

	// One correlation id per command invocation; interrupt aborts strategies
	// between submissions rather than mid-request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithReqID(ctx, uuid.NewString())

	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "order":
		err = runOrder(ctx, cfg, args)
	case "stop-limit":
		err = runStopLimit(ctx, cfg, args)
	case "oco":
		err = runOCO(ctx, cfg, args)
	case "twap":
		err = runTWAP(ctx, cfg, args)
	case "grid":
		err = runGrid(ctx, cfg, args)
	case "status":
		err = runStatus(ctx, cfg, args)
	case "cancel":
		err = runCancel(ctx, cfg, args)
	case "ping":
		err = runPing(ctx, cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command_failed", "command", cmd, "error", err.Error(), "req_id", logger.ReqID(ctx))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Binance USDT-M Futures CLI

Usage:
  futures-cli <command> [flags]

Commands:
  order       Place a MARKET or LIMIT order
  stop-limit  Place a STOP order with trigger and limit price
  oco         Place a bracket pair (take-profit LIMIT + stop-loss STOP)
  twap        Split a quantity into timed slices
  grid        Ladder limit orders across a price range
  status      Query an order by id
  cancel      Cancel an order by id
  ping        Check REST connectivity

Run 'futures-cli <command> -h' for the command's flags.`)
}

type commonFlags struct {
	symbol       string
	side         string
	qty          float64
	tif          string
	reduceOnly   bool
	positionSide string
	leverage     int
	mainnet      bool
	testnet      bool
	dryRun       bool
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.symbol, "symbol", "", "trading pair, e.g. BTCUSDT (required)")
	fs.StringVar(&cf.side, "side", "", "BUY or SELL (required)")
	fs.Float64Var(&cf.qty, "qty", 0, "order quantity in base asset (required)")
	fs.StringVar(&cf.tif, "tif", "GTC", "time in force: GTC, IOC or FOK")
	fs.BoolVar(&cf.reduceOnly, "reduce-only", false, "only reduce an existing position")
	fs.StringVar(&cf.positionSide, "position-side", "", "LONG or SHORT (hedge mode)")
	fs.IntVar(&cf.leverage, "leverage", 0, "set symbol leverage before placing orders")
	fs.BoolVar(&cf.mainnet, "mainnet", false, "use the production API")
	fs.BoolVar(&cf.testnet, "testnet", false, "force the testnet API")
	fs.BoolVar(&cf.dryRun, "dry-run", false, "simulate signed calls locally")
	return cf
}

// makeClient resolves the network choice: -testnet wins, then -mainnet, then
// the BINANCE_MAINNET flag from the environment.
func makeClient(cfg *config.Config, cf *commonFlags) *api.BinanceClient {
	mainnet := !cf.testnet && (cf.mainnet || cfg.Mainnet)
	return api.NewBinanceClient(cfg.BinanceAPIKey, cfg.BinanceSecretKey, mainnet, cf.dryRun)
}

func setup(ctx context.Context, cfg *config.Config, cf *commonFlags) (*api.BinanceClient, core.Options, error) {
	opts, err := core.NewOptions(cf.tif, cf.reduceOnly, cf.positionSide)
	if err != nil {
		return nil, core.Options{}, err
	}

	client := makeClient(cfg, cf)
	if cf.leverage > 0 {
		if _, err := client.SetLeverage(ctx, cf.symbol, cf.leverage); err != nil {
			return nil, core.Options{}, fmt.Errorf("set leverage: %w", err)
		}
	}
	return client, opts, nil
}

func runOrder(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	cf := registerCommon(fs)
	orderType := fs.String("type", "", "MARKET or LIMIT (required)")
	price := fs.Float64("price", 0, "limit price (required for LIMIT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, opts, err := setup(ctx, cfg, cf)
	if err != nil {
		return err
	}

	var res *model.OrderResponse
	switch strings.ToUpper(*orderType) {
	case model.TypeMarket:
		res, err = core.MarketOrder(ctx, client, cf.symbol, cf.side, cf.qty, opts)
	case model.TypeLimit:
		if *price <= 0 {
			return fmt.Errorf("%w: -price is required for LIMIT orders", core.ErrInvalidParameter)
		}
		res, err = core.LimitOrder(ctx, client, cf.symbol, cf.side, cf.qty, *price, opts)
	default:
		return fmt.Errorf("%w: unsupported -type %q", core.ErrInvalidParameter, *orderType)
	}
	if err != nil {
		return err
	}

	printOrder(res)
	return nil
}

func runStopLimit(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stop-limit", flag.ExitOnError)
	cf := registerCommon(fs)
	stop := fs.Float64("stop", 0, "trigger price (required)")
	price := fs.Float64("price", 0, "limit price (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, opts, err := setup(ctx, cfg, cf)
	if err != nil {
		return err
	}

	res, err := core.PlaceStopLimit(ctx, client, core.StopLimitConfig{
		Symbol:     cf.symbol,
		Side:       cf.side,
		Quantity:   cf.qty,
		StopPrice:  *stop,
		LimitPrice: *price,
		Opts:       opts,
	})
	if err != nil {
		return err
	}

	printOrder(res)
	return nil
}

func runOCO(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("oco", flag.ExitOnError)
	cf := registerCommon(fs)
	takeProfit := fs.Float64("take-profit", 0, "take-profit limit price (required)")
	stop := fs.Float64("stop", 0, "stop-loss trigger price (required)")
	stopLimit := fs.Float64("stop-limit", 0, "stop-loss limit price (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, opts, err := setup(ctx, cfg, cf)
	if err != nil {
		return err
	}

	res, err := core.PlaceBracket(ctx, client, core.BracketConfig{
		Symbol:     cf.symbol,
		Side:       cf.side,
		Quantity:   cf.qty,
		TakeProfit: *takeProfit,
		Stop:       *stop,
		StopLimit:  *stopLimit,
		Opts:       opts,
	})
	if res != nil {
		if res.TakeProfit != nil {
			fmt.Println("take-profit leg:")
			printOrder(res.TakeProfit)
		}
		if res.StopLoss != nil {
			fmt.Println("stop-loss leg:")
			printOrder(res.StopLoss)
		}
	}
	return err
}

func runTWAP(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("twap", flag.ExitOnError)
	cf := registerCommon(fs)
	slices := fs.Int("slices", 0, "number of child orders (required)")
	interval := fs.Float64("interval", 0, "seconds between child orders (required)")
	orderType := fs.String("type", model.TypeMarket, "MARKET or LIMIT")
	price := fs.Float64("price", 0, "limit price (required for LIMIT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, opts, err := setup(ctx, cfg, cf)
	if err != nil {
		return err
	}

	twapCfg := core.TWAPConfig{
		Symbol:    cf.symbol,
		Side:      cf.side,
		Quantity:  cf.qty,
		Slices:    *slices,
		Interval:  time.Duration(*interval * float64(time.Second)),
		OrderType: *orderType,
		Opts:      opts,
	}
	if *price > 0 {
		twapCfg.Price = price
	}

	results, err := core.RunTWAP(ctx, client, twapCfg)
	for _, res := range results {
		printOrder(res)
	}
	return err
}

func runGrid(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	cf := registerCommon(fs)
	levels := fs.Int("levels", 0, "number of grid levels (required, >= 2)")
	lower := fs.Float64("lower", 0, "lowest grid price (required)")
	upper := fs.Float64("upper", 0, "highest grid price (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, opts, err := setup(ctx, cfg, cf)
	if err != nil {
		return err
	}

	results, err := core.RunGrid(ctx, client, core.GridConfig{
		Symbol:   cf.symbol,
		Side:     cf.side,
		Levels:   *levels,
		Lower:    *lower,
		Upper:    *upper,
		Quantity: cf.qty,
		Opts:     opts,
	})
	for _, res := range results {
		printOrder(res)
	}
	return err
}

func runStatus(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	cf := registerCommon(fs)
	orderID := fs.Int64("order-id", 0, "exchange order id")
	clientOrderID := fs.String("client-order-id", "", "client order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *orderID == 0 && *clientOrderID == "" {
		return fmt.Errorf("%w: -order-id or -client-order-id is required", core.ErrInvalidParameter)
	}

	client := makeClient(cfg, cf)
	res, err := client.GetOrder(ctx, cf.symbol, *orderID, *clientOrderID)
	if err != nil {
		return err
	}

	printOrder(res)
	return nil
}

func runCancel(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	cf := registerCommon(fs)
	orderID := fs.Int64("order-id", 0, "exchange order id")
	clientOrderID := fs.String("client-order-id", "", "client order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *orderID == 0 && *clientOrderID == "" {
		return fmt.Errorf("%w: -order-id or -client-order-id is required", core.ErrInvalidParameter)
	}

	client := makeClient(cfg, cf)
	res, err := client.CancelOrder(ctx, cf.symbol, *orderID, *clientOrderID)
	if err != nil {
		return err
	}

	printOrder(res)
	return nil
}

func runPing(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	cf := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := makeClient(cfg, cf)
	start := time.Now()
	if err := client.Ping(ctx); err != nil {
		return err
	}
	fmt.Printf("pong (%s, %dms)\n", client.BaseURL, time.Since(start).Milliseconds())
	return nil
}

func printOrder(res *model.OrderResponse) {
	out, err := json.MarshalIndent(map[string]any{
		"orderId": res.OrderID,
		"symbol":  res.Symbol,
		"status":  res.Status,
		"side":    res.Side,
		"type":    res.Type,
		"price":   res.Price,
		"origQty": res.OrigQty,
	}, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", res)
		return
	}
	fmt.Println(string(out))
}
