package llm

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != ProviderGemini {
		t.Errorf("expected provider %s, got %s", ProviderGemini, cfg.Provider)
	}
	if cfg.GetModel(TierExtraction) == "" {
		t.Error("expected a model for the extraction tier")
	}
	if cfg.GetModel(TierScoring) == "" {
		t.Error("expected a model for the scoring tier")
	}
}

func TestConfig_GetModel_FallsBackToScoring(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierScoring: "gemini-2.0-flash"},
	}

	if got := cfg.GetModel(TierExtraction); got != "gemini-2.0-flash" {
		t.Errorf("expected fallback to scoring model, got %q", got)
	}
}

func TestConfig_WithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierScoring, "gemini-2.5-pro")

	if got := custom.GetModel(TierScoring); got != "gemini-2.5-pro" {
		t.Errorf("expected overridden model, got %q", got)
	}
	if got := base.GetModel(TierScoring); got == "gemini-2.5-pro" {
		t.Error("WithModel must not mutate the original config")
	}
	if custom.GetModel(TierExtraction) != base.GetModel(TierExtraction) {
		t.Error("untouched tiers must carry over")
	}
}
