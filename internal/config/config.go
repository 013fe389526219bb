package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ai       AIConfig
	Rag      RagConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	UploadDir string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "openai"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string
	OpenAIAPIKey      string
}

type RagConfig struct {
	ChunkSize          int
	ChunkOverlap       int
	TopK               int
	RelevanceThreshold float64
}

type MetricsConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			IngestTopic:        getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		},
		Rag: RagConfig{
			ChunkSize:          getEnvAsInt("RAG_CHUNK_SIZE", 500),
			ChunkOverlap:       getEnvAsInt("RAG_CHUNK_OVERLAP", 50),
			TopK:               getEnvAsInt("RAG_TOP_K", 5),
			RelevanceThreshold: getEnvAsFloat("RAG_RELEVANCE_THRESHOLD", 0.3),
		},
		Metrics: MetricsConfig{
			BaseURL:  getEnv("METRICS_SERVICE_URL", "http://localhost:8001"),
			CacheTTL: time.Duration(getEnvAsInt("METRICS_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
