package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	ResumeDir       string
	ResumePDFName   string
	SeedUsers       []SeedUser
}

// SeedUser is a user record preloaded into the store on boot.
type SeedUser struct {
	ID    string
	Name  string
	Email string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		ResumeDir:       getEnv("RESUME_DIR", "./resources"),
		ResumePDFName:   getEnv("RESUME_PDF_NAME", "resume.pdf"),
		SeedUsers:       parseSeedUsers(getEnv("SEED_USERS", "")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseSeedUsers parses comma-separated "id:name:email" triples.
// Malformed entries are logged and skipped.
func parseSeedUsers(raw string) []SeedUser {
	var out []SeedUser
	for _, entry := range splitAndTrim(raw) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			log.Printf("config: skipping malformed SEED_USERS entry %q", entry)
			continue
		}
		out = append(out, SeedUser{
			ID:    strings.TrimSpace(parts[0]),
			Name:  strings.TrimSpace(parts[1]),
			Email: strings.TrimSpace(parts[2]),
		})
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
