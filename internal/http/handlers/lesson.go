package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguaflow-backend/internal/http/response"
	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/services"
)

type LessonHandler struct {
	pipeline *lesson.SegmentPipeline
	fetch    services.TextFetchService
}

func NewLessonHandler(pipeline *lesson.SegmentPipeline, fetch services.TextFetchService) *LessonHandler {
	return &LessonHandler{pipeline: pipeline, fetch: fetch}
}

type generateRequest struct {
	Text string `json:"text"`
}

// POST /api/lessons/generate
func (h *LessonHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if req.Text == "" {
		response.FromError(c, fmt.Errorf("%w: text required", errs.ErrInvalidArgument))
		return
	}

	segments, err := h.pipeline.Build(c.Request.Context(), req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"segments": segments})
}

type generateFromURLRequest struct {
	URL string `json:"url"`
}

// POST /api/lessons/generate-from-url
func (h *LessonHandler) GenerateFromURL(c *gin.Context) {
	var req generateFromURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	text, err := h.fetch.FetchFromURL(c.Request.Context(), req.URL)
	if err != nil {
		response.FromError(c, err)
		return
	}

	segments, err := h.pipeline.Build(c.Request.Context(), text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"segments": segments, "rawText": text})
}

type generateFromPromptRequest struct {
	Prompt string `json:"prompt"`
}

// POST /api/lessons/generate-from-prompt
func (h *LessonHandler) GenerateFromPrompt(c *gin.Context) {
	var req generateFromPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	text, err := h.fetch.GenerateFromPrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		response.FromError(c, err)
		return
	}

	segments, err := h.pipeline.Build(c.Request.Context(), text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"segments": segments, "rawText": text})
}

type downloadRequest struct {
	Segments []lesson.Segment `json:"segments"`
	Variant  string           `json:"variant"`
}

// POST /api/lessons/download
func (h *LessonHandler) Download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	variant, err := lesson.ParseVariant(req.Variant)
	if err != nil {
		response.FromError(c, err)
		return
	}

	blob, err := lesson.Assemble(req.Segments, variant)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{
		"audio":   lesson.EncodeAudio(blob),
		"variant": string(variant),
	})
}
