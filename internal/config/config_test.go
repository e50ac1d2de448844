package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 3042},
		Database: DatabaseConfig{Driver: "mysql", Host: "localhost", Name: "parts"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"driver", func(c *Config) { c.Database.Driver = "postgres" }, `database.driver must be "mysql" or "sqlite", got "postgres"`},
		{"mysql host", func(c *Config) { c.Database.Host = "" }, "database.host"},
		{"mysql name", func(c *Config) { c.Database.Name = "" }, "database.name"},
		{"sqlite path", func(c *Config) { c.Database.Driver = "sqlite" }, "database.path"},
		{"idle over open", func(c *Config) { c.Database.MaxIdleConns = 50 }, "max_idle_conns"},
		{"cache addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_SQLite(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Driver: "sqlite", Path: "/tmp/catalog.db"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3042 {
		t.Errorf("expected Port=3042, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeouts %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("expected Driver=mysql, got %q", cfg.Database.Driver)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("expected Port=3306, got %d", cfg.Database.Port)
	}
	if cfg.Database.Table != "dataweb" {
		t.Errorf("expected Table=dataweb, got %q", cfg.Database.Table)
	}
	if cfg.Database.MaxOpenConns != 10 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("unexpected pool %d/%d", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}
	if cfg.Database.QueryTimeoutSec != 10 {
		t.Errorf("expected QueryTimeoutSec=10, got %d", cfg.Database.QueryTimeoutSec)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected TTLSec=300, got %d", cfg.Cache.TTLSec)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Catalog.SuggestionLimit != 10 {
		t.Errorf("expected SuggestionLimit=10, got %d", cfg.Catalog.SuggestionLimit)
	}
	if cfg.Catalog.RankSplitModels {
		t.Error("RankSplitModels must default to false")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080, ReadTimeoutSec: 30},
		Database: DatabaseConfig{Driver: "sqlite", Table: "parts", QueryTimeoutSec: 2},
		Catalog:  CatalogConfig{SuggestionLimit: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Table != "parts" || cfg.Database.QueryTimeoutSec != 2 {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Catalog.SuggestionLimit != 5 {
		t.Errorf("expected SuggestionLimit=5, got %d", cfg.Catalog.SuggestionLimit)
	}
}

func TestDatabaseAddr(t *testing.T) {
	d := DatabaseConfig{Host: "db.internal", Port: 3307}
	if d.Addr() != "db.internal:3307" {
		t.Errorf("addr = %q", d.Addr())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PARTSDEX_TEST_HOST", "db.example")

	tests := []struct {
		in, want string
	}{
		{"host: ${PARTSDEX_TEST_HOST}", "host: db.example"},
		{"host: ${PARTSDEX_TEST_HOST:-fallback}", "host: db.example"},
		{"host: ${PARTSDEX_TEST_UNSET:-fallback}", "host: fallback"},
		{"host: ${PARTSDEX_TEST_UNSET}", "host: "},
	}
	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
			t.Errorf("expand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${PARTSDEX_TEST_PORT:-8081}
database:
  driver: sqlite
  path: /var/lib/partsdex/catalog.db
catalog:
  rank_split_models: true
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Table != "dataweb" {
		t.Errorf("unexpected database %+v", cfg.Database)
	}
	if !cfg.Catalog.RankSplitModels {
		t.Error("rank_split_models not loaded")
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("expected local, got %q", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("expected prod, got %q", GetEnv())
	}
}
