package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/config"
	"github.com/alphabot-ai/blogcli/internal/logger"
	"github.com/alphabot-ai/blogcli/internal/session"
	"github.com/alphabot-ai/blogcli/internal/store/sqlite"
	"github.com/alphabot-ai/blogcli/internal/view"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		return report(stderr, err)
	}
	return 0
}

// app is what every command needs, opened once per invocation.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	api    *client.Client
	tokens *session.Store
	gate   *session.Gate
}

func (a *app) open() error {
	a.cfg = config.Load()

	log, err := logger.New(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	durable, err := sqlite.Open(a.cfg.DurablePath())
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	sess, err := sqlite.Open(a.cfg.SessionPath())
	if err != nil {
		durable.Close()
		return fmt.Errorf("open session store: %w", err)
	}
	a.tokens = session.NewStore(durable, sess)
	a.gate = session.NewGate(a.tokens, nil, log)
	a.api = client.New(a.cfg.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTPTimeout}),
		client.WithLogger(log),
	)
	return nil
}

func (a *app) close() {
	if a.tokens != nil {
		if err := a.tokens.Close(); err != nil {
			a.log.Warn("close token store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// report prints err for the user and returns the exit code.
func report(w io.Writer, err error) int {
	var r *view.Redirect
	if errors.As(err, &r) {
		if msg := message(r.Cause); msg != "" {
			errColor.Fprintln(w, msg)
		}
		printRoute(w, r.To)
		return 1
	}
	errColor.Fprintf(w, "Error: %s\n", message(err))
	return 1
}

// message maps errors from the API and views to their user text. Anything
// else, such as a bad argument, prints as is.
func message(err error) string {
	if err == nil {
		return ""
	}
	var (
		apiErr  *client.APIError
		netErr  *client.NetworkError
		userErr *view.UserError
	)
	if errors.As(err, &apiErr) || errors.As(err, &netErr) || errors.As(err, &userErr) {
		return view.UserMessage(err)
	}
	if view.UserMessage(err) == "" {
		return ""
	}
	return err.Error()
}
