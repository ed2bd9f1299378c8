package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nomadzpay/config"
	"nomadzpay/core"
	"nomadzpay/crypto"
	"nomadzpay/native/payments"
	"nomadzpay/observability/logging"
	"nomadzpay/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("NMZ_ENV"))

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger := logging.Setup("paymentd", env, cfg.LogFile)

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	node := core.NewNode(db, logger)

	if err := seedGenesis(node, cfg, logger); err != nil {
		logger.Error("Failed to seed genesis config", slog.Any("error", err))
		os.Exit(1)
	}

	go serveMetrics(cfg.MetricsAddress, logger)

	logger.Info("paymentd started", slog.String("dataDir", cfg.DataDir))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("paymentd shutting down")
}

// seedGenesis creates the config record on first boot. An already-populated
// store is left untouched.
func seedGenesis(node *core.Node, cfg *config.Config, logger *slog.Logger) error {
	_, err := node.PaymentsConfig()
	if err == nil {
		logger.Info("payments config already present, skipping genesis")
		return nil
	}
	if !errors.Is(err, payments.ErrConfigNotFound) {
		return err
	}
	if !cfg.HasGenesis() {
		logger.Warn("no payments config in store and no genesis material configured")
		return nil
	}

	admin, err := crypto.DecodeAddress(cfg.Genesis.Admin)
	if err != nil {
		return fmt.Errorf("genesis admin: %w", err)
	}
	feeVault, err := crypto.DecodeAddress(cfg.Genesis.FeeVault)
	if err != nil {
		return fmt.Errorf("genesis fee vault: %w", err)
	}
	destinationVault, err := crypto.DecodeAddress(cfg.Genesis.DestinationVault)
	if err != nil {
		return fmt.Errorf("genesis destination vault: %w", err)
	}

	_, err = node.PaymentsInitialize(
		admin.Array(),
		feeVault.Array(),
		destinationVault.Array(),
		cfg.Genesis.BookingFeeBps,
		cfg.Genesis.AllowedPaymentTokens,
	)
	return err
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server stopped", slog.Any("error", err))
	}
}
