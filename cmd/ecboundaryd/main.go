// Command ecboundaryd serves boundary calls over gRPC.
//
// Usage:
//
//	ecboundaryd [-config ecboundaryd.yaml]
//
// Configuration keys (YAML or ECBOUNDARY_* environment variables):
//
//	listen         address to listen on (127.0.0.1:7443)
//	max_msg_bytes  gRPC send and receive limit (64 MiB)
//	log_level      debug, info, warn or error (info)
//	log_format     text or json (text)
//	curves         curve names to serve; empty serves all
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/grpcboundary"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/host"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(logging.NewHandler(os.Stderr, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel)))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logging.New(logger)); err != nil {
		logger.Error("ecboundaryd stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, log logging.Logger) error {
	tags, err := cfg.tags()
	if err != nil {
		return err
	}
	h, err := host.NewDefault(log, tags...)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	defer lis.Close()

	return serve(ctx, lis, h, cfg, log)
}

// serve runs the gRPC server on lis until ctx is done, then stops it
// gracefully.
func serve(ctx context.Context, lis net.Listener, h *host.Handler, cfg *Config, log logging.Logger) error {
	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.MaxMsgBytes),
		grpc.MaxSendMsgSize(cfg.MaxMsgBytes),
	)
	grpcboundary.RegisterBoundaryServer(srv, &grpcboundary.Server{Handler: h, Logger: log})

	names := make([]string, 0)
	for _, t := range h.Tags() {
		names = append(names, t.String())
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info(ctx, "ecboundaryd listening",
			"addr", lis.Addr().String(),
			"curves", names,
			"version", ecboundary.ModuleVersion(),
			"protocol", ecboundary.ProtocolVersion)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info(context.Background(), "ecboundaryd shutting down")
		srv.GracefulStop()
		return nil
	})
	return eg.Wait()
}
