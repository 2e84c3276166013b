package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// Loaded .env values win over the process environment
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// GetEnvInt64 returns def when the key is missing or not a valid integer.
func GetEnvInt64(key string, def int64) int64 {
	raw := GetEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// SetupEnvFile loads the first .env file found. A missing file is not fatal:
// containers usually pass configuration through the process environment.
func SetupEnvFile(paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{
			".env",       // Current directory
			"../../.env", // From cmd/foxcms to project root
		}
	}

	for _, envFile := range paths {
		loaded, err := godotenv.Read(envFile)
		if err == nil {
			Env = loaded
			return true
		}
	}

	Env = map[string]string{}
	return false
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
