package testutil

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/service"
	"tasktrack/internal/storage"
	"tasktrack/internal/ui"
)

// TestApp is an App over a FakeService with captured console output.
type TestApp struct {
	*app.App
	Fake   *FakeService
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// NewTestApp builds an App over svc with file storage in a temp dir.
// input feeds the console prompts.
func NewTestApp(t *testing.T, svc service.Service, input string) *TestApp {
	t.Helper()

	cfg := config.New(t.TempDir())
	st, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}

	var stdout, stderr bytes.Buffer
	console := ui.NewConsole(strings.NewReader(input), &stdout, &stderr)

	a := app.New(cfg, svc, st, console, DiscardLogger())
	a.Auth.RedirectDelay = 1
	t.Cleanup(func() { a.Close() })

	ta := &TestApp{App: a, Stdout: &stdout, Stderr: &stderr}
	if fake, ok := svc.(*FakeService); ok {
		ta.Fake = fake
	}
	return ta
}

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TestUser is the account the fakes authenticate as.
var TestUser = service.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}
