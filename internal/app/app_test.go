package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/football-tournament/internal/config"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		HTTPAddr:               ":0",
		ReadTimeout:            time.Second,
		WriteTimeout:           time.Second,
		CORSAllowedOrigins:     []string{"*"},
		StorageDriver:          config.StorageMemory,
		SeedDemoData:           true,
		CacheEnabled:           true,
		CacheDriver:            config.CacheDriverMemory,
		CacheTTL:               time.Minute,
		JWTSecret:              "test-secret",
		JWTTTL:                 time.Hour,
		BcryptCost:             4,
		BootstrapAdminUsername: "admin",
		BootstrapAdminPassword: "secret-pass",
		BackupWorkers:          2,
	}
}

func TestNew_MemoryStorageServesSeededData(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.repos.close() })

	srv := httptest.NewServer(a.Server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/teams")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	login := `{"username":"admin","password":"secret-pass"}`
	resp, err = http.Post(srv.URL+"/v1/auth/login", "application/json", strings.NewReader(login))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected bootstrap admin login to succeed, got %d", resp.StatusCode)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNew_WithoutSeedStartsEmpty(t *testing.T) {
	cfg := memoryConfig()
	cfg.SeedDemoData = false
	cfg.CacheEnabled = false
	cfg.BootstrapAdminUsername = ""
	cfg.BootstrapAdminPassword = ""

	a, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	teams, err := a.repos.teams.List(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected no teams, got %d", len(teams))
	}
	if err := a.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNewBackup_RequiresPostgres(t *testing.T) {
	_, err := NewBackup(t.Context(), memoryConfig(), logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "STORAGE_DRIVER") {
		t.Fatalf("expected storage driver error, got %v", err)
	}
}
