package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearSAPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SAP_URL", "SAP_USERNAME", "SAP_PASSWORD", "SAP_CLIENT",
		"SAP_TIMEOUT_MS", "SAP_TLS_INSECURE", "SAP_RAW_MODE", "SAP_HTTP_ADDR",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearSAPEnv(t)
	t.Setenv("SAP_URL", "https://sap.example.com:44300")
	t.Setenv("SAP_USERNAME", "DEVELOPER")
	t.Setenv("SAP_PASSWORD", "secret")
	t.Setenv("SAP_CLIENT", "001")
	t.Setenv("SAP_RAW_MODE", "true")
	t.Setenv("SAP_TIMEOUT_MS", "10000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://sap.example.com:44300" || cfg.Username != "DEVELOPER" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.RawMode {
		t.Error("SAP_RAW_MODE=true not honored")
	}
	if cfg.TimeoutMs != 10000 {
		t.Errorf("timeoutMs = %d, want 10000", cfg.TimeoutMs)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearSAPEnv(t)
	t.Setenv("SAP_URL", "https://sap.example.com")
	t.Setenv("SAP_USERNAME", "U")
	t.Setenv("SAP_PASSWORD", "P")
	t.Setenv("SAP_CLIENT", "100")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RawMode {
		t.Error("raw mode must default to off")
	}
	if cfg.TimeoutMs != 45000 {
		t.Errorf("timeoutMs = %d, want default 45000", cfg.TimeoutMs)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("httpAddr = %q, want default :3000", cfg.HTTPAddr)
	}
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	clearSAPEnv(t)
	t.Setenv("SAP_USERNAME", "DEVELOPER")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected validation error")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T", err)
	}

	// Every missing field is reported at once, never just the first.
	for _, want := range []string{"SAP_URL", "SAP_PASSWORD", "SAP_CLIENT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
	if strings.Contains(err.Error(), "SAP_USERNAME") {
		t.Errorf("error %q mentions a field that was present", err.Error())
	}
}

func TestLoadDestination(t *testing.T) {
	clearSAPEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "destinations.yaml")
	content := `destinations:
  dev:
    url: https://dev.example.com:44300
    username: DEVELOPER
    password: secret
    client: "001"
    tlsInsecure: true
  qa:
    url: https://qa.example.com:44300
    username: TESTER
    password: qa-secret
    client: "002"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDestination(path, "dev", DefaultConfig())
	if err != nil {
		t.Fatalf("LoadDestination failed: %v", err)
	}
	if cfg.BaseURL != "https://dev.example.com:44300" || cfg.Client != "001" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.TLSInsecure {
		t.Error("tlsInsecure not applied from destination")
	}

	if _, err := LoadDestination(path, "prod", DefaultConfig()); err == nil {
		t.Error("expected error for unknown destination")
	}
}

func TestLoadDestinationEnvWins(t *testing.T) {
	clearSAPEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "destinations.yaml")
	content := `destinations:
  dev:
    url: https://dev.example.com
    username: FILEUSER
    password: filepass
    client: "001"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	base := DefaultConfig()
	base.Username = "ENVUSER"

	cfg, err := LoadDestination(path, "dev", base)
	if err != nil {
		t.Fatalf("LoadDestination failed: %v", err)
	}
	if cfg.Username != "ENVUSER" {
		t.Errorf("username = %q, the environment must win over the file", cfg.Username)
	}
	if cfg.Password != "filepass" {
		t.Errorf("password = %q, empty fields must come from the file", cfg.Password)
	}
}
