package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID                    string
	Port                         string
	AllowedOrigins               []string
	StorageBucket                string
	SignedURLServiceAccountEmail string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	RedisURL       string
	SearchCacheTTL time.Duration

	AutosaveDelay   time.Duration
	PublishInterval time.Duration
}

func Load() Config {
	// .env is optional; real env always wins
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] loaded .env")
	}

	// FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	storageBucket := getenv("FIREBASE_STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	return Config{
		ProjectID:                    projectID,
		Port:                         getenv("PORT", "8080"),
		AllowedOrigins:               splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173")),
		StorageBucket:                storageBucket,
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),

		CloudinaryURL:       getenv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getenv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getenv("CLOUDINARY_API_SECRET", ""),

		RedisURL:       getenv("REDIS_URL", ""),
		SearchCacheTTL: getduration("SEARCH_CACHE_TTL", 30*time.Second),

		AutosaveDelay:   getduration("AUTOSAVE_DELAY", 5*time.Second),
		PublishInterval: getduration("PUBLISH_INTERVAL", time.Minute),
	}
}

// CloudinaryEnabled reports whether enough credentials are present to talk to Cloudinary.
func (c Config) CloudinaryEnabled() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func splitList(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[Config] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
