package llmprovider_test

import (
	"errors"
	"testing"
	"time"

	"resume-optimizer/config"
	"resume-optimizer/pkg/llmprovider"
	"resume-optimizer/pkg/log"
)

// TestIntegration_ConfigToManagerFlow verifies that configuration loading,
// provider initialization, and manager work together correctly
func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{
				Name:     "openai",
				Enabled:  true,
				Priority: 2,
				APIKey:   "test-openai-key",
				Model:    "gpt-4o-mini",
				Timeout:  "30s",
			},
			{
				Name:     "gemini",
				Enabled:  true,
				Priority: 1,
				APIKey:   "test-gemini-key",
				Model:    "gemini-2.0-flash",
				Timeout:  "30s",
			},
			{
				Name:     "deepseek",
				Enabled:  false,
				Priority: 3,
				APIKey:   "test-deepseek-key",
				Model:    "deepseek-chat",
			},
		},
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      "1s",
	}

	providers, initErrs, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(initErrs) != 0 {
		t.Errorf("Expected no init errors, got %v", initErrs)
	}

	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "gemini" {
		t.Errorf("Expected first provider to be gemini, got %s", providers[0].Name())
	}
	if providers[1].Name() != "openai" || providers[1].Model() != "gpt-4o-mini" {
		t.Errorf("Expected second provider to be openai/gpt-4o-mini, got %s/%s", providers[1].Name(), providers[1].Model())
	}

	retryDelay, _ := time.ParseDuration(cfg.RetryDelay)
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
	}, log.NewNop())

	if manager == nil {
		t.Fatal("Manager should not be nil")
	}
}

func TestIntegration_PartialInitialization(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "unknown", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
			{Name: "qwen", Enabled: true, Priority: 2, APIKey: "k", Model: "qwen-plus"},
			{Name: "gemini", Enabled: true, Priority: 3, APIKey: "", Model: "gemini-2.0-flash"},
		},
	}

	providers, initErrs, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Expected partial success, got: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "qwen" {
		t.Fatalf("Expected only qwen to initialize, got %d providers", len(providers))
	}
	if len(initErrs) != 2 {
		t.Fatalf("Expected 2 init errors, got %d", len(initErrs))
	}
	if !errors.Is(initErrs[0], llmprovider.ErrUnknownProvider) {
		t.Errorf("Expected ErrUnknownProvider, got %v", initErrs[0])
	}
}

func TestIntegration_NoneInitialized(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 1, APIKey: "k", Model: "gpt-4o-mini", Timeout: "not-a-duration"},
		},
	}
	if _, _, err := llmprovider.InitializeProviders(cfg); err == nil {
		t.Fatal("Expected error when no provider initializes")
	}

	if _, _, err := llmprovider.InitializeProviders(&config.LLMConfig{}); !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got %v", err)
	}
}
