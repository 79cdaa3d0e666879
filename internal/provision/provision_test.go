package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/mahoraga/mahoraga-access/internal/cloudflare"
	"github.com/mahoraga/mahoraga-access/internal/config"
	"github.com/mahoraga/mahoraga-access/internal/report"
)

// fakeAPI is an in-process Cloudflare v4 stand-in that records the order of
// calls and captures created resources.
type fakeAPI struct {
	t     *testing.T
	calls []string

	existingApps []map[string]any
	otpStatus    int      // 0 means success
	otpErrors    []string // envelope error messages when otpStatus is set
	failPolicy   bool

	createdApp    map[string]any
	createdPolicy map[string]any
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /accounts/acct-1/access/apps", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "list-apps")
		f.writeSuccess(w, f.existingApps)
	})

	mux.HandleFunc("POST /accounts/acct-1/access/identity_providers", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "enable-otp")
		if f.otpStatus != 0 {
			f.writeFailure(w, f.otpStatus, f.otpErrors)
			return
		}
		f.writeSuccess(w, map[string]any{"id": "idp-1", "name": "One-Time PIN", "type": "onetimepin"})
	})

	mux.HandleFunc("POST /accounts/acct-1/access/apps", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "create-app")
		if err := json.NewDecoder(r.Body).Decode(&f.createdApp); err != nil {
			f.t.Fatalf("decode create-app body: %v", err)
		}
		f.writeSuccess(w, map[string]any{"id": "app-new", "name": f.createdApp["name"], "domain": f.createdApp["domain"]})
	})

	mux.HandleFunc("POST /accounts/acct-1/access/apps/app-new/policies", func(w http.ResponseWriter, r *http.Request) {
		f.calls = append(f.calls, "create-policy")
		if f.failPolicy {
			f.writeFailure(w, http.StatusBadRequest, []string{"policy validation failed"})
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&f.createdPolicy); err != nil {
			f.t.Fatalf("decode create-policy body: %v", err)
		}
		f.writeSuccess(w, map[string]any{"id": "policy-new", "name": f.createdPolicy["name"]})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		f.writeFailure(w, http.StatusNotFound, []string{"not found"})
	})

	return mux
}

func (f *fakeAPI) writeSuccess(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"errors":  []any{},
		"result":  result,
	})
}

func (f *fakeAPI) writeFailure(w http.ResponseWriter, status int, messages []string) {
	errs := make([]map[string]any, len(messages))
	for i, m := range messages {
		errs[i] = map[string]any{"code": 1000, "message": m}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"errors":  errs,
		"result":  nil,
	})
}

func newProvisioner(t *testing.T, fake *fakeAPI, cfg *config.Config) (*Provisioner, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	cf := cloudflare.New("test-token", "acct-1", cloudflare.WithBaseURL(server.URL))
	var out bytes.Buffer
	return New(cf, cfg, report.New(&out)), &out
}

func baseConfig(emails ...string) *config.Config {
	return &config.Config{
		APIToken:      "test-token",
		AccountID:     "acct-1",
		WorkerURL:     "https://h.workers.dev",
		AllowedEmails: emails,
	}
}

func TestRunShortCircuitsWhenAppExists(t *testing.T) {
	fake := &fakeAPI{t: t, existingApps: []map[string]any{
		{"id": "app-1", "name": "MAHORAGA Trading Agent", "domain": "h.workers.dev"},
	}}
	p, out := newProvisioner(t, fake, baseConfig())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := []string{"list-apps"}; !reflect.DeepEqual(fake.calls, want) {
		t.Errorf("calls = %v, want %v (no create calls on rerun)", fake.calls, want)
	}
	if !strings.Contains(out.String(), "app-1") {
		t.Errorf("output should name the existing application:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "one.dash.cloudflare.com/acct-1/access/apps") {
		t.Errorf("output should include the dashboard URL:\n%s", out.String())
	}
}

func TestRunProvisionsInOrder(t *testing.T) {
	fake := &fakeAPI{t: t}
	p, out := newProvisioner(t, fake, baseConfig())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"list-apps", "enable-otp", "create-app", "create-policy"}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Errorf("calls = %v, want %v", fake.calls, want)
	}

	if fake.createdApp["name"] != "MAHORAGA Trading Agent" {
		t.Errorf("app name = %v", fake.createdApp["name"])
	}
	if fake.createdApp["domain"] != "h.workers.dev" {
		t.Errorf("app domain = %v", fake.createdApp["domain"])
	}
	if fake.createdApp["session_duration"] != "24h" {
		t.Errorf("session_duration = %v", fake.createdApp["session_duration"])
	}
	if !strings.Contains(out.String(), "one-time PIN") {
		t.Errorf("output should describe OTP mode:\n%s", out.String())
	}
}

func TestRunEmptyAllowlistCreatesEveryonePolicy(t *testing.T) {
	fake := &fakeAPI{t: t}
	p, _ := newProvisioner(t, fake, baseConfig())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fake.createdPolicy["name"] != "OTP Verification" {
		t.Errorf("policy name = %v", fake.createdPolicy["name"])
	}
	include, _ := fake.createdPolicy["include"].([]any)
	if len(include) != 1 {
		t.Fatalf("include = %v, want exactly one rule", include)
	}
	rule, _ := include[0].(map[string]any)
	if everyone, ok := rule["everyone"].(map[string]any); !ok || len(everyone) != 0 {
		t.Errorf("include[0] = %v, want {\"everyone\":{}}", rule)
	}
}

func TestRunAllowlistCreatesEmailPolicy(t *testing.T) {
	fake := &fakeAPI{t: t}
	p, out := newProvisioner(t, fake, baseConfig("a@x.com", "b@x.com"))

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fake.createdPolicy["name"] != "Allowed Users" {
		t.Errorf("policy name = %v", fake.createdPolicy["name"])
	}
	if fake.createdPolicy["decision"] != "allow" {
		t.Errorf("decision = %v", fake.createdPolicy["decision"])
	}
	if prec, _ := fake.createdPolicy["precedence"].(float64); prec != 1 {
		t.Errorf("precedence = %v", fake.createdPolicy["precedence"])
	}

	include, _ := fake.createdPolicy["include"].([]any)
	if len(include) != 2 {
		t.Fatalf("include has %d rules, want 2", len(include))
	}
	for i, wantEmail := range []string{"a@x.com", "b@x.com"} {
		rule, _ := include[i].(map[string]any)
		email, _ := rule["email"].(map[string]any)
		if email["email"] != wantEmail {
			t.Errorf("include[%d] = %v, want email %s", i, rule, wantEmail)
		}
	}

	// require/exclude are present and empty, not null
	if req, ok := fake.createdPolicy["require"].([]any); !ok || len(req) != 0 {
		t.Errorf("require = %v, want []", fake.createdPolicy["require"])
	}
	if exc, ok := fake.createdPolicy["exclude"].([]any); !ok || len(exc) != 0 {
		t.Errorf("exclude = %v, want []", fake.createdPolicy["exclude"])
	}

	if !strings.Contains(out.String(), "2 address(es)") {
		t.Errorf("output should report allowlist size:\n%s", out.String())
	}
}

func TestRunTreatsOTPAlreadyExistsAsSuccess(t *testing.T) {
	fake := &fakeAPI{
		t:         t,
		otpStatus: http.StatusConflict,
		otpErrors: []string{"identity provider already exists"},
	}
	p, _ := newProvisioner(t, fake, baseConfig())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"list-apps", "enable-otp", "create-app", "create-policy"}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Errorf("calls = %v, want %v", fake.calls, want)
	}
}

func TestRunAbortsOnOtherOTPFailure(t *testing.T) {
	fake := &fakeAPI{
		t:         t,
		otpStatus: http.StatusForbidden,
		otpErrors: []string{"authentication error"},
	}
	p, _ := newProvisioner(t, fake, baseConfig())

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "authentication error") {
		t.Errorf("error = %v, want API message propagated", err)
	}

	want := []string{"list-apps", "enable-otp"}
	if !reflect.DeepEqual(fake.calls, want) {
		t.Errorf("calls = %v, want %v (no create calls after failure)", fake.calls, want)
	}
}

func TestRunAbortsOnPolicyFailure(t *testing.T) {
	fake := &fakeAPI{t: t, failPolicy: true}
	p, _ := newProvisioner(t, fake, baseConfig())

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "policy validation failed") {
		t.Errorf("error = %v", err)
	}
}

func TestRunRejectsBadWorkerURL(t *testing.T) {
	fake := &fakeAPI{t: t}
	cfg := baseConfig()
	cfg.WorkerURL = "/no/host"
	p, _ := newProvisioner(t, fake, cfg)

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected error for URL without hostname")
	}
	if len(fake.calls) != 0 {
		t.Errorf("no API calls expected, got %v", fake.calls)
	}
}
