package app

import (
	"strings"

	"github.com/yungbote/linguaflow-backend/internal/platform/envutil"
)

type Config struct {
	Port            int
	SessionsDir     string
	AnnotateWorkers int
	CORSOrigins     []string
}

func LoadConfig() Config {
	origins := strings.Split(envutil.Str("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Port:            envutil.Int("PORT", 3030),
		SessionsDir:     envutil.Str("SESSIONS_DIR", "./sessions"),
		AnnotateWorkers: envutil.Int("ANNOTATE_WORKERS", 1),
		CORSOrigins:     origins,
	}
}
