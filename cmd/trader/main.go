package main

import (
	"context"
	"flag"
	"log"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"

	"github.com/betbot/goexec/internal/chain"
	"github.com/betbot/goexec/internal/domain"
	"github.com/betbot/goexec/internal/executor"
	"github.com/betbot/goexec/internal/readiness"
	"github.com/betbot/goexec/internal/trading"
	"github.com/betbot/goexec/pkg/config"
	"github.com/betbot/goexec/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		userJSON   = flag.String("user", "", "user.json wallet file (optional)")
		required   = flag.Float64("required", 10, "required USDC balance in dollars")
		submit     = flag.Bool("submit", false, "submit an order after the readiness check")
		tokenID    = flag.String("token", "", "market token id (decimal or 0x-hex)")
		side       = flag.String("side", "BUY", "order side: BUY or SELL")
		maker      = flag.Float64("maker", 0, "maker amount in dollars/token units")
		taker      = flag.Float64("taker", 0, "taker amount in dollars/token units")
	)
	flag.Parse()

	log.Println("[Trader] Starting...")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("[Trader] No .env file found, using environment variables")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("[Trader] Failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if *userJSON != "" {
		if err := cfg.LoadUserJSON(*userJSON); err != nil {
			log.Fatalf("[Trader] Failed to load user.json: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Trader] Invalid config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.OutputFile,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("[Trader] Failed to init logger: %v", err)
	}

	if cfg.ReadOnly {
		log.Println("[Trader] ⚠️  READ-ONLY MODE ENABLED - no real orders will be submitted")
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		log.Fatalf("[Trader] Invalid private key: %v", err)
	}

	gw, err := chain.NewGateway(cfg.RPCURL, chain.Chain(cfg.ChainID), privateKey)
	if err != nil {
		log.Fatalf("[Trader] Failed to create chain gateway: %v", err)
	}

	proxy := common.HexToAddress(cfg.ProxyWallet)
	checker := readiness.NewChecker(gw, proxy, gw.Exchange())
	exec := executor.NewExecutor(cfg.ExecutorURL)
	client := trading.NewClient(checker, exec)

	ctx := context.Background()

	requiredUnits := dollarsToUnits(*required)
	if err := client.EnsureTradingReady(ctx, requiredUnits); err != nil {
		log.Fatalf("[Trader] Not ready to trade: %v", err)
	}
	log.Println("[Trader] ✅ Trading ready")

	if !*submit {
		return
	}

	token, ok := new(big.Int).SetString(*tokenID, 0)
	if !ok {
		log.Fatalf("[Trader] Invalid token id: %q", *tokenID)
	}
	order := &domain.Order{
		TokenID:     token,
		Side:        domain.Side(strings.ToUpper(*side)),
		MakerAmount: dollarsToUnits(*maker),
		TakerAmount: dollarsToUnits(*taker),
	}

	mode := executor.ModeLive
	if cfg.ReadOnly {
		mode = executor.ModeSimulate
	}

	orderID, err := client.SubmitOrder(ctx, order, mode)
	if err != nil {
		log.Fatalf("[Trader] Order submission failed: %v", err)
	}
	if orderID != "" {
		log.Printf("[Trader] Order submitted: id=%s", orderID)
	} else {
		log.Println("[Trader] Order submitted")
	}
}

// dollarsToUnits converts a dollar amount to 6-decimal on-chain units.
func dollarsToUnits(d float64) *big.Int {
	return big.NewInt(int64(d * 1_000_000))
}
