package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguaflow-backend/internal/http/handlers"
	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
	"github.com/yungbote/linguaflow-backend/internal/platform/openai"
	"github.com/yungbote/linguaflow-backend/internal/services"
	"github.com/yungbote/linguaflow-backend/internal/store"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Router *gin.Engine
}

func New(log *logger.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	cfg := LoadConfig()

	ai, err := openai.NewClient(log)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}

	translator, err := services.NewTranslationService(log, ai)
	if err != nil {
		return nil, fmt.Errorf("init translation service: %w", err)
	}
	speech, err := services.NewSpeechService(log, ai)
	if err != nil {
		return nil, fmt.Errorf("init speech service: %w", err)
	}
	fetch, err := services.NewTextFetchService(log, ai)
	if err != nil {
		return nil, fmt.Errorf("init text fetch service: %w", err)
	}

	segmenter := lesson.NewSentenceSegmenter(log, translator)
	annotator := lesson.NewAudioAnnotator(log, speech)
	pipeline := lesson.NewSegmentPipeline(log, segmenter, annotator, cfg.AnnotateWorkers)

	sessions, err := store.NewSessionStore(log, cfg.SessionsDir)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	lessonHandler := handlers.NewLessonHandler(pipeline, fetch)
	sessionHandler := handlers.NewSessionHandler(sessions)

	router := wireRouter(log, cfg, lessonHandler, sessionHandler)

	return &App{Log: log, Cfg: cfg, Router: router}, nil
}

func (a *App) Run() error {
	addr := fmt.Sprintf(":%d", a.Cfg.Port)
	a.Log.Info("server starting", "addr", addr)
	return a.Router.Run(addr)
}
