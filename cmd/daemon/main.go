package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"nearbite/go-backend/internal/api"
	"nearbite/go-backend/internal/app"
	"nearbite/go-backend/internal/bootstrap/appconfig"
	"nearbite/go-backend/internal/catalog"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	rpcAddr := flag.String("rpc-addr", "", "JSON-RPC listen address (overrides config)")
	configPath := flag.String("config", "", "Path to config.yaml (optional)")
	catalogPath := flag.String("catalog", "", "Path to a catalog seed file (optional)")
	rpcToken := flag.String("rpc-token", "", "RPC token for Authorization/X-NearBite-RPC-Token (optional)")
	flag.Parse()
	if *showVersion {
		fmt.Printf("nearbite-daemon version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *rpcToken != "" {
		_ = os.Setenv("NEARBITE_RPC_TOKEN", *rpcToken)
	}

	cfg := appconfig.LoadFromPath(*configPath)
	addr := cfg.Server.Addr
	if *rpcAddr != "" {
		addr = *rpcAddr
	}
	seedPath := cfg.Catalog.Path
	if *catalogPath != "" {
		seedPath = *catalogPath
	}

	store, err := catalog.LoadFromPath(seedPath)
	if err != nil {
		log.Fatalf("nearbite-daemon failed to load catalog: %v", err)
	}

	app.RegisterMetrics(prometheus.DefaultRegisterer)
	svc := api.NewServiceWithOptions(api.Options{Catalog: store})
	srv := api.NewServerWithService(addr, svc)

	log.Println("nearbite-daemon starting")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("nearbite-daemon failed: %v", err)
	}
	log.Println("nearbite-daemon stopped")
}
