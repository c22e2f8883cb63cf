package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ccollicutt/notemap/pkg/output"
	"github.com/ccollicutt/notemap/pkg/webhook"
)

func TestRunAnalyze_Webhook(t *testing.T) {
	var hits atomic.Int32
	var got output.Report
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, stderr, err := execute(t, NewAnalyzeCommand(&GlobalOptions{}), scenarioNotes,
		"-q", "--webhook-url", server.URL, "--webhook-token", "secret")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("webhook hits = %d, want 1", hits.Load())
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.Summary.Lines != 3 || got.Metadata.RunID == "" {
		t.Errorf("report = %+v", got.Summary)
	}
	if !strings.Contains(stderr, "webhook sent") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunAnalyze_WebhookTriggerSkips(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	// Every line is categorized, so on_uncategorized does not fire.
	_, _, err := execute(t, NewAnalyzeCommand(&GlobalOptions{}), "buy milk\nfix the shelf",
		"-q", "--webhook-url", server.URL, "--webhook-trigger", "on_uncategorized")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("webhook hits = %d, want 0", hits.Load())
	}
}

func TestRunAnalyze_WebhookFailureDoesNotFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	stdout, stderr, err := execute(t, NewAnalyzeCommand(&GlobalOptions{}), scenarioNotes,
		"--webhook-url", server.URL)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if stdout != scenarioOutline {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "webhook failed") {
		t.Errorf("stderr = %q", stderr)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestWebhookUserAgent(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	if _, _, err := execute(t, NewAnalyzeCommand(&GlobalOptions{}), "buy milk", "-q", "--webhook-url", server.URL); err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if ua != webhook.UserAgent {
		t.Errorf("User-Agent = %q, want %q", ua, webhook.UserAgent)
	}
}
