// Package config loads provider settings from the environment. Every
// exercise validates only the sections it actually needs, so a missing
// Gemini key does not stop an Azure-only demo.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Azure holds Azure OpenAI settings. A deployment on Azure plays the role
// model names play elsewhere.
type Azure struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Deployment string
}

// Gemini holds settings for Gemini's OpenAI-compatible endpoint.
type Gemini struct {
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
}

// Ollama holds settings for a local Ollama server.
type Ollama struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Load reads a .env file if one is present and returns nothing else; the
// typed section loaders below read the process environment afterwards.
// Missing .env files are not an error, exported variables work the same.
func Load(paths ...string) {
	if len(paths) == 0 {
		_ = godotenv.Load()
		return
	}
	_ = godotenv.Load(paths...)
}

// LoadAzure reads and validates the Azure OpenAI section.
func LoadAzure() (Azure, error) {
	cfg := Azure{
		Endpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		APIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		APIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		Deployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
	}

	var missing []string
	if cfg.Endpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if cfg.APIVersion == "" {
		missing = append(missing, "AZURE_OPENAI_API_VERSION")
	}
	if cfg.Deployment == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT_NAME")
	}
	if len(missing) > 0 {
		return Azure{}, missingVarsError("Azure OpenAI", missing)
	}
	return cfg, nil
}

// LoadGemini reads and validates the Gemini section. Model names default to
// gemini-2.5-flash for chat and text-embedding-001 for embeddings.
func LoadGemini() (Gemini, error) {
	cfg := Gemini{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		BaseURL:    os.Getenv("GEMINI_API_BASE"),
		Model:      envOr("GEMINI_MODEL_NAME", "gemini-2.5-flash"),
		EmbedModel: envOr("GEMINI_EMBED_MODEL", "text-embedding-001"),
	}

	var missing []string
	if cfg.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.BaseURL == "" {
		missing = append(missing, "GEMINI_API_BASE")
	}
	if len(missing) > 0 {
		return Gemini{}, missingVarsError("Gemini", missing)
	}
	return cfg, nil
}

// LoadOllama reads the local-model section. Everything has a sensible local
// default, so this never fails; Ollama ignores the API key but the OpenAI
// client wants one.
func LoadOllama() Ollama {
	return Ollama{
		BaseURL: envOr("OLLAMA_LOCAL_API_BASE", "http://localhost:11434/v1"),
		APIKey:  envOr("OLLAMA_LOCAL_KEY", "ollama"),
		Model:   envOr("OLLAMA_MODEL_NAME", "llama3.2"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func missingVarsError(section string, vars []string) error {
	return fmt.Errorf("missing %s environment variables: %s (set them in .env or export them)",
		section, strings.Join(vars, ", "))
}
