package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisURL         string
	RedisPassword    string
	DecisionCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret       string
	ServiceTokenTTL time.Duration

	SearchDepth     int
	AlternatePieces bool
	MoveTimeout     time.Duration
	RandomSeed      uint64

	LogLevel  string
	LogPretty bool

	// Tournament client
	CoordinatorURL string
	PlayerName     string
	TournamentID   int
	UserRole       string

	RetentionDays int

	// Self-play
	ArenaGames   int
	ArenaDepthA  int
	ArenaDepthB  int
	ArenaWorkers int
}

var AppConfig *Config

func LoadConfig() *Config {
	// CORS
	allowedOrigins := []string{"http://localhost:5173"}
	allowedOrigins = append(allowedOrigins, GetEnvAsList("ALLOWED_ORIGINS", nil)...)

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")

	AppConfig = &Config{
		Port:           GetEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins,

		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisURL:         GetEnv("REDIS_URL", ""),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		DecisionCacheTTL: GetEnvAsDuration("DECISION_CACHE_TTL", 24*time.Hour),

		KafkaBrokers: GetEnvAsList("KAFKA_BROKERS", nil),
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "bot-events"),

		JWTSecret:       jwtSecret,
		ServiceTokenTTL: time.Duration(GetEnvAsInt("SERVICE_TOKEN_TTL_HOURS", 24*30)) * time.Hour,

		SearchDepth:     GetEnvAsInt("SEARCH_DEPTH", 10),
		AlternatePieces: GetEnvAsBool("SEARCH_ALTERNATE_PIECES", false),
		MoveTimeout:     GetEnvAsDuration("MOVE_TIMEOUT", 0),
		RandomSeed:      uint64(GetEnvAsInt("RANDOM_SEED", 0)),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnvAsBool("LOG_PRETTY", false),

		CoordinatorURL: GetEnv("COORDINATOR_URL", "ws://localhost:4000"),
		PlayerName:     GetEnv("PLAYER_NAME", "bot"),
		TournamentID:   GetEnvAsInt("TOURNAMENT_ID", 80000),
		UserRole:       GetEnv("USER_ROLE", "player"),

		RetentionDays: GetEnvAsInt("RETENTION_DAYS", 30),

		ArenaGames:   GetEnvAsInt("ARENA_GAMES", 20),
		ArenaDepthA:  GetEnvAsInt("ARENA_DEPTH_A", 4),
		ArenaDepthB:  GetEnvAsInt("ARENA_DEPTH_B", 2),
		ArenaWorkers: GetEnvAsInt("ARENA_WORKERS", 4),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).
			Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("750ms", "2s"); a bare integer
// is read as seconds.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).
			Msg("invalid duration value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated value, dropping blanks.
func GetEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
