// Command blogmock serves an in-memory blog API for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alphabot-ai/blogcli/internal/config"
	"github.com/alphabot-ai/blogcli/internal/logger"
	"github.com/alphabot-ai/blogcli/internal/mockapi"
	"github.com/alphabot-ai/blogcli/internal/rate"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.Mock.Addr, "listen address")
	noSeed := flag.Bool("empty", false, "start without sample users and posts")
	flag.Parse()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	api := mockapi.NewServer(cfg.Mock.JWTSecret, cfg.Mock.TokenTTL, log,
		mockapi.WithAuthLimiter(rate.NewWindow(cfg.Mock.AuthPerMinute, time.Minute, nil)),
	)
	if !*noSeed {
		summary, err := seed(api, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			log.Fatal("seed", zap.Error(err))
		}
		printSummary(os.Stdout, summary)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("blogmock listening", zap.String("addr", *addr))
		fmt.Printf("blogmock listening on %s (API base: http://localhost%s/v1)\n", *addr, *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}
