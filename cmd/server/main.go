package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"medical-booking/internal/config"
	"medical-booking/internal/events"
	gweb "medical-booking/internal/grpcweb"
	"medical-booking/internal/handler"
	"medical-booking/internal/logging"
	"medical-booking/internal/middleware"
	"medical-booking/internal/rest"
	"medical-booking/internal/rpc"
	"medical-booking/internal/service"
	"medical-booking/internal/storage"
	"medical-booking/internal/store"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// storage
	slots, closeSlots, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeSlots()

	pub, err := events.New(cfg.Events, log)
	if err != nil {
		return err
	}
	defer pub.Close()

	st := store.New(slots, log)
	dir := service.NewDirectory(st, service.WithLatency(cfg.Directory.Latency))
	apts := service.NewAppointments(st)
	h := handler.New(dir, apts, pub, cfg.JWTSecret, log)

	// grpc server
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(cfg.JWTSecret),
		),
	)
	rpc.RegisterBookingServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return err
	}
	// every server reports here if it stops on its own
	errc := make(chan error, 3)
	go func() {
		log.Info("grpc listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	grpcAddr := net.JoinHostPort("localhost", strconv.Itoa(lis.Addr().(*net.TCPAddr).Port))
	bridge, err := gweb.New(grpcAddr, log)
	if err != nil {
		srv.Stop()
		return err
	}
	defer bridge.Close()

	webSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go serveHTTP(log, "grpc-web", webSrv, errc)

	restSrv := &http.Server{
		Addr:              ":" + cfg.RESTPort,
		Handler:           rest.New(h, cfg.JWTSecret, rl, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go serveHTTP(log, "rest", restSrv, errc)

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case serveErr = <-errc:
		log.Error("server stopped", "err", serveErr)
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = webSrv.Shutdown(sctx)
	_ = restSrv.Shutdown(sctx)
	srv.GracefulStop()
	return serveErr
}

func serveHTTP(log *slog.Logger, name string, s *http.Server, errc chan<- error) {
	log.Info(name+" listening", "addr", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errc <- fmt.Errorf("%s: %w", name, err)
	}
}
