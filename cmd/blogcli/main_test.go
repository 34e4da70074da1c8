package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alphabot-ai/blogcli/internal/mockapi"
	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/view"
)

func startMock(t *testing.T) *mockapi.Server {
	t.Helper()
	api := mockapi.NewServer("cli-secret", time.Hour, nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	httpServer := &http.Server{Handler: api}
	go func() {
		_ = httpServer.Serve(listener)
	}()
	t.Cleanup(func() { _ = httpServer.Close() })

	dir := t.TempDir()
	t.Setenv("BLOGCLI_API_URL", "http://"+listener.Addr().String()+"/v1")
	t.Setenv("BLOGCLI_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("BLOGCLI_SESSION_DIR", filepath.Join(dir, "run"))
	t.Setenv("BLOGCLI_LOG_LEVEL", "error")
	return api
}

func blogcli(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestEndToEndBloggerSession(t *testing.T) {
	api := startMock(t)
	if _, err := api.CreateUser("writer@example.com", "secret1", model.RoleBlogger); err != nil {
		t.Fatalf("create user: %v", err)
	}

	out, _, code := blogcli(t, "whoami")
	if code != 0 || !strings.Contains(out, "Not signed in") {
		t.Fatalf("whoami before sign in: code %d, output %q", code, out)
	}

	out, errOut, code := blogcli(t, "signin", "--email", "writer@example.com", "--password", "secret1")
	if code != 0 {
		t.Fatalf("signin failed: %s", errOut)
	}
	if !strings.Contains(out, "/my/blogs") {
		t.Fatalf("expected blogger to land on /my/blogs, got %q", out)
	}

	_, errOut, code = blogcli(t, "new", "--header", "First post", "--body", "Hello from the terminal")
	if code != 0 {
		t.Fatalf("new failed: %s", errOut)
	}

	out, errOut, code = blogcli(t, "mine")
	if code != 0 {
		t.Fatalf("mine failed: %s", errOut)
	}
	if !strings.Contains(out, "First post") {
		t.Fatalf("expected post in my blogs, got %q", out)
	}

	out, errOut, code = blogcli(t, "show", "999")
	if code == 0 {
		t.Fatalf("expected missing post to fail, got %q", out)
	}
	if !strings.Contains(errOut, "An unexpected error occurred.") {
		t.Fatalf("unexpected message %q", errOut)
	}

	out, _, code = blogcli(t, "list")
	if code != 0 || !strings.Contains(out, "First post") {
		t.Fatalf("list: code %d, output %q", code, out)
	}

	_, _, code = blogcli(t, "signout")
	if code != 0 {
		t.Fatalf("signout exit code %d", code)
	}
	out, _, _ = blogcli(t, "whoami")
	if !strings.Contains(out, "Not signed in") {
		t.Fatalf("expected signed out, got %q", out)
	}
}

func TestCommentRequiresSignIn(t *testing.T) {
	api := startMock(t)
	owner, err := api.CreateUser("owner@example.com", "secret1", model.RoleBlogger)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	postID := api.SeedPost(owner, "Hello", "World")

	_, errOut, code := blogcli(t, "comment", strconv.FormatInt(postID, 10), "--text", "hi")
	if code == 0 {
		t.Fatalf("expected failure without a token")
	}
	if !strings.Contains(errOut, "To add comment. You should be signed in!") {
		t.Fatalf("unexpected message %q", errOut)
	}
}

func TestReaderCannotCompose(t *testing.T) {
	startMock(t)
	_, errOut, code := blogcli(t, "new", "--header", "h", "--body", "b")
	if code == 0 {
		t.Fatalf("expected redirect without a token")
	}
	if !strings.Contains(errOut, "→ /") {
		t.Fatalf("expected redirect home, got %q", errOut)
	}
}

func TestRouteCommand(t *testing.T) {
	cases := map[string]string{
		"/":              "blogcli list",
		"/signin":        "blogcli signin",
		"/my/blogs":      "blogcli mine",
		"/blogs/12":      "blogcli show 12",
		"/update-blog/3": "blogcli edit 3",
	}
	for route, want := range cases {
		if got := routeCommand(view.Route(route)); got != want {
			t.Fatalf("%s: expected %q, got %q", route, want, got)
		}
	}
}
