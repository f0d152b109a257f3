package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/grpc"

	"github.com/conorfabian/streamlinks/internal/catalog"
	"github.com/conorfabian/streamlinks/internal/grpcserver"
	"github.com/conorfabian/streamlinks/internal/logging"
	"github.com/conorfabian/streamlinks/internal/metadata"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $STREAMLINKS_CONFIG)")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("load config failed", "err", err)
	}
	logging.SetLevel(cfg.Log.Level)
	logger := logging.New("grpc")

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	cat, err := catalog.Open(loadCtx, cfg.Catalog)
	cancelLoad()
	if err != nil {
		logger.Fatal("catalog load failed", "err", err)
	}

	lookup, err := metadata.NewFromConfig(cfg.TMDB, logging.New("metadata"))
	if err != nil {
		logger.Fatal("metadata provider setup failed", "err", err)
	}
	svc := search.NewService(cat, lookup, search.WithLogger(logging.New("search")))

	listener, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Fatal("grpc listen failed", "addr", cfg.Server.GRPCAddr, "err", err)
	}

	grpcServer := grpc.NewServer()
	grpcserver.RegisterDirectoryServer(grpcServer, grpcserver.NewServer(cat, svc))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("shutdown signal received", "signal", sig)
		grpcServer.GracefulStop()
	}()

	logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr, "sites", cat.Len())
	if err := grpcServer.Serve(listener); err != nil {
		logger.Fatal("grpc server stopped", "err", err)
	}
}
