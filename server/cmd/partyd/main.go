package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Olle-svg/ponggamebyolle/server/core"
	"github.com/Olle-svg/ponggamebyolle/shared/logging"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// envOr reads key from the environment, falling back to def.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envUint(key string, def uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			return uint(n)
		}
	}
	return def
}

func main() {
	// A missing .env is fine; flags and defaults still apply.
	_ = godotenv.Load()

	port := flag.Uint("port", envUint("PARTYD_PORT", 7373), "Listen port")
	ttl := flag.Duration("ttl", envDuration("PARTYD_TTL", 10*time.Minute), "Idle time before a party is reaped")
	grace := flag.Duration("grace", envDuration("PARTYD_GRACE", 30*time.Second), "Idle time before a finished party is reaped")
	level := flag.String("loglevel", envOr("PARTYD_LOGLEVEL", "info"), "Log level (trace, debug, info, warn, error)")
	flag.Parse()

	if err := run(*port, *ttl, *grace, *level); err != nil {
		fmt.Fprintf(os.Stderr, "partyd: %v\n", err)
		os.Exit(1)
	}
}

func run(port uint, ttl, grace time.Duration, level string) error {
	logs := logging.New(os.Stdout, level)
	log := logs.Logger(logging.Server)

	store := core.NewStore(logs.Logger(logging.Party))
	server := core.NewServer(store, log)
	janitor := core.NewJanitor(store, ttl, grace, logs.Logger(logging.Party))

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Party store listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return janitor.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		log.Infof("Shutting down party store...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
