package config

import (
	"os"
)

type Config struct {
	ServerPort   string
	DatabaseURL  string
	OllamaURL    string
	OllamaModel  string
	HistoryPath  string
	BaseCurrency string
}

func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "./beott.db"),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llama3.2"),
		HistoryPath:  getEnv("HISTORY_PATH", "./logs/memory.md"),
		BaseCurrency: getEnv("BASE_CURRENCY", "KRW"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
