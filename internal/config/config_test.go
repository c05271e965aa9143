package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8081},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Cache:    CacheConfig{Enabled: true},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidBudgetAction(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Budget.Action = "invalid_action"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid budget action")
	}

	expected := `llm.budget.action must be "warn" or "reject", got "invalid_action"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidBudgetActions(t *testing.T) {
	for _, action := range []string{"", "warn", "reject"} {
		t.Run("action="+action, func(t *testing.T) {
			cfg := validConfig()
			cfg.LLM.Budget.Action = action
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid action %q: %v", action, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_CacheRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing addrs with cache enabled")
	}

	cfg.Cache.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with cache disabled: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidate_SearXNGBaseURL(t *testing.T) {
	for _, raw := range []string{"127.0.0.1:8080", "ftp://searx", "http://", "::"} {
		cfg := validConfig()
		cfg.SearXNG.BaseURL = raw
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for base_url %q", raw)
		}
	}
}

func TestValidate_SafeSearchRange(t *testing.T) {
	cfg := validConfig()
	cfg.SearXNG.SafeSearch = 3

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for safesearch=3")
	}
}

func TestValidate_LLMEnabledRequiresModel(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Enabled = true
	cfg.LLM.BaseURL = "http://localhost:8000/v1"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing model")
	}

	cfg.LLM.Model = "qwen2.5-0.5b-instruct"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.SearXNG.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("unexpected searxng base url %q", cfg.SearXNG.BaseURL)
	}
	if cfg.SearXNG.Language != "auto" {
		t.Errorf("expected language=auto, got %q", cfg.SearXNG.Language)
	}
	if cfg.Search.DefaultLimit != 30 {
		t.Errorf("expected DefaultLimit=30, got %d", cfg.Search.DefaultLimit)
	}
	if len(cfg.Search.ImageCategories) != 2 || cfg.Search.ImageCategories[1] != "videos" {
		t.Errorf("unexpected image categories %v", cfg.Search.ImageCategories)
	}
	if cfg.LLM.ResultsToConsider != 3 {
		t.Errorf("expected ResultsToConsider=3, got %d", cfg.LLM.ResultsToConsider)
	}
	if cfg.Cache.TTLSec != 600 {
		t.Errorf("expected TTLSec=600, got %d", cfg.Cache.TTLSec)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SEARCHPROXY_TEST_PORT", "9090")

	cfg, err := Parse([]byte(`
http:
  port: ${SEARCHPROXY_TEST_PORT}
searxng:
  base_url: ${SEARCHPROXY_TEST_UNSET:-http://searxng:8080}
  safesearch: 1
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.SearXNG.BaseURL != "http://searxng:8080" {
		t.Errorf("expected default base url, got %q", cfg.SearXNG.BaseURL)
	}
}

func TestParse_SystemPrompt(t *testing.T) {
	cfg, err := Parse([]byte(`
searxng:
  base_url: http://searxng:8080
  safesearch: 1
llm:
  system_prompt: "Answer briefly.\n"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.SystemPrompt != "Answer briefly.\n" {
		t.Errorf("unexpected system prompt %q", cfg.LLM.SystemPrompt)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("http: [port"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected port to be set")
	}
}
