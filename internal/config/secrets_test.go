package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-file\nSYSTEM_PROMPT=\"Translate to Hebrew\"\nGEMINI_API_KEYS=k1, k2 ,\nAPP_TOKEN=gate\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvOpenAIKey, "sk-env")

	s, err := LoadSecrets(path)
	if err != nil {
		t.Fatalf("LoadSecrets() error = %v", err)
	}

	if s.OpenAIKey != "sk-env" {
		t.Errorf("OpenAIKey = %q, environment should win", s.OpenAIKey)
	}
	if s.Prompt != "Translate to Hebrew" {
		t.Errorf("Prompt = %q", s.Prompt)
	}
	if len(s.GeminiKeys) != 2 || s.GeminiKeys[1] != "k2" {
		t.Errorf("GeminiKeys = %v", s.GeminiKeys)
	}
	if err := s.RequireFor(ProviderGemini); err != nil {
		t.Errorf("RequireFor() error = %v", err)
	}
}

func TestLoadSecretsMissingFile(t *testing.T) {
	s, err := LoadSecrets(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if err := (Secrets{OpenAIKey: s.OpenAIKey}).RequireFor(ProviderOpenAI); err == nil {
		t.Error("RequireFor() should fail without a prompt")
	}
}

func TestCheckToken(t *testing.T) {
	open := Secrets{}
	if err := open.CheckToken(""); err != nil {
		t.Errorf("open gate rejected: %v", err)
	}

	gated := Secrets{AppToken: "s3cret"}
	if err := gated.CheckToken("s3cret"); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if err := gated.CheckToken("wrong"); err == nil {
		t.Error("wrong token accepted")
	}
	if err := gated.CheckToken(""); err == nil {
		t.Error("empty token accepted")
	}
}
