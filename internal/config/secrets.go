package config

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvGeminiKeys = "GEMINI_API_KEYS"
	EnvPrompt     = "SYSTEM_PROMPT"
	EnvAppToken   = "APP_TOKEN"
)

// Secrets holds credentials and the instruction prompt. They are loaded once
// and never supplied per call.
type Secrets struct {
	OpenAIKey  string
	GeminiKeys []string
	Prompt     string
	AppToken   string
}

// LoadSecrets reads the secrets env file at path. Values already present in
// the process environment take precedence. A missing file is not an error.
func LoadSecrets(path string) (Secrets, error) {
	values := map[string]string{}
	if path != "" {
		read, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Secrets{}, fmt.Errorf("read secrets file: %w", err)
		}
		for k, v := range read {
			values[k] = v
		}
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(values[key])
	}

	s := Secrets{
		OpenAIKey: get(EnvOpenAIKey),
		Prompt:    get(EnvPrompt),
		AppToken:  get(EnvAppToken),
	}
	for _, key := range strings.Split(get(EnvGeminiKeys), ",") {
		if key = strings.TrimSpace(key); key != "" {
			s.GeminiKeys = append(s.GeminiKeys, key)
		}
	}
	return s, nil
}

// RequireFor checks that the credentials needed by the configured analysis
// provider and the prompt are present.
func (s Secrets) RequireFor(provider string) error {
	if s.Prompt == "" {
		return fmt.Errorf("%s is not set", EnvPrompt)
	}
	if s.OpenAIKey == "" {
		return fmt.Errorf("%s is not set", EnvOpenAIKey)
	}
	if provider == ProviderGemini && len(s.GeminiKeys) == 0 {
		return fmt.Errorf("%s is not set", EnvGeminiKeys)
	}
	return nil
}

// CheckToken verifies the application gate token. When no token is
// configured the gate is open.
func (s Secrets) CheckToken(token string) error {
	if s.AppToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(s.AppToken), []byte(token)) != 1 {
		return errors.New("invalid or missing access token")
	}
	return nil
}
