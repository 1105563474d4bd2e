package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		VectorStore: VectorStoreConfig{
			APIKey:      "vs-key",
			Environment: "prod",
			Addrs:       []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{APIKey: "sk-test"},
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

func TestValidate_MissingVectorStoreCredentials(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"api key", func(c *Config) { c.VectorStore.APIKey = "" }, "vector_store.api_key is required"},
		{"environment", func(c *Config) { c.VectorStore.Environment = "" }, "vector_store.environment is required"},
		{"addrs", func(c *Config) { c.VectorStore.Addrs = nil }, "vector_store.addrs is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("got %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_DimensionMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 768
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestValidate_PipelineStep(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Steps = []PipelineStep{{Name: "collect"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for step without command")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3000 {
		t.Errorf("expected Port=3000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.VectorStore.IndexName != "semantic-search" {
		t.Errorf("expected IndexName=semantic-search, got %q", cfg.VectorStore.IndexName)
	}
	if cfg.VectorStore.UpsertBatchSize != 100 {
		t.Errorf("expected UpsertBatchSize=100, got %d", cfg.VectorStore.UpsertBatchSize)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected embedding model text-embedding-3-small, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected embedding dimensions 1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("expected llm model gpt-3.5-turbo, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 30 {
		t.Errorf("expected MaxTokens=30, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("expected Temperature=0.7, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxConcurrency != 5 {
		t.Errorf("expected MaxConcurrency=5, got %d", cfg.LLM.MaxConcurrency)
	}
}

func TestApplyDefaults_LLMBaseURLInherited(t *testing.T) {
	cfg := Config{Embedding: EmbeddingConfig{APIKey: "sk-shared", BaseURL: "https://llm.example.com/v1"}}
	cfg.ApplyDefaults()
	if cfg.LLM.APIKey != "" {
		t.Errorf("LLM key must come from llm.api_key only, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://llm.example.com/v1" {
		t.Errorf("expected LLM base url inherited, got %q", cfg.LLM.BaseURL)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{Port: 8080, ReadTimeoutSec: 30},
		VectorStore: VectorStoreConfig{IndexName: "custom", UpsertBatchSize: 50},
		LLM:         LLMConfig{Model: "gpt-4o-mini", MaxConcurrency: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.VectorStore.IndexName != "custom" || cfg.VectorStore.UpsertBatchSize != 50 {
		t.Errorf("vector store overridden: %+v", cfg.VectorStore)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.MaxConcurrency != 2 {
		t.Errorf("llm overridden: %+v", cfg.LLM)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SEMSEARCH_TEST_VS_KEY", "from-env")
	t.Setenv("SEMSEARCH_TEST_OPENAI_KEY", "sk-env")

	raw := `
vector_store:
  api_key: ${SEMSEARCH_TEST_VS_KEY}
  environment: ${SEMSEARCH_TEST_UNSET:-staging}
  addrs: ["localhost:6379"]
embedding:
  api_key: ${SEMSEARCH_TEST_OPENAI_KEY}
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.VectorStore.APIKey != "from-env" {
		t.Errorf("api_key = %q", cfg.VectorStore.APIKey)
	}
	if cfg.VectorStore.Environment != "staging" {
		t.Errorf("environment = %q, want default staging", cfg.VectorStore.Environment)
	}
}

func TestParse_MissingKeyFails(t *testing.T) {
	raw := `
vector_store:
  environment: prod
  addrs: ["localhost:6379"]
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "vector_store.api_key") {
		t.Fatalf("expected api_key error, got %v", err)
	}
}

func TestParse_ProviderKeysOptional(t *testing.T) {
	t.Setenv("SEMSEARCH_TEST_VS_KEY", "vs-key")

	cfg, err := Parse([]byte(`
vector_store:
  api_key: ${SEMSEARCH_TEST_VS_KEY}
  environment: dev
  addrs: ["localhost:6379"]
embedding:
  api_key: ${SEMSEARCH_TEST_OPENAI_KEY}
llm:
  api_key: ${SEMSEARCH_TEST_OPENAI_KEY}
`))
	if err != nil {
		t.Fatalf("missing provider keys must not fail startup: %v", err)
	}
	if cfg.LLM.APIKey != "" || cfg.Embedding.APIKey != "" {
		t.Errorf("keys = %q/%q, want empty", cfg.Embedding.APIKey, cfg.LLM.APIKey)
	}
}

func TestParse_MissingVectorStoreKeyFails(t *testing.T) {
	_, err := Parse([]byte(`
vector_store:
  environment: dev
  addrs: ["localhost:6379"]
`))
	if err == nil || !strings.Contains(err.Error(), "vector_store.api_key is required") {
		t.Fatalf("expected vector_store.api_key error, got %v", err)
	}
}
