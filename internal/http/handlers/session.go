package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguaflow-backend/internal/http/response"
	"github.com/yungbote/linguaflow-backend/internal/lesson"
	"github.com/yungbote/linguaflow-backend/internal/pkg/errs"
	"github.com/yungbote/linguaflow-backend/internal/store"
)

type SessionHandler struct {
	store *store.SessionStore
}

func NewSessionHandler(st *store.SessionStore) *SessionHandler {
	return &SessionHandler{store: st}
}

func sessionID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid session id %q", errs.ErrInvalidArgument, c.Param("id"))
	}
	return id, nil
}

type createSessionRequest struct {
	Title    string           `json:"title"`
	RawText  string           `json:"rawText"`
	Segments []lesson.Segment `json:"segments"`
}

// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	id, err := h.store.Create(c.Request.Context(), req.RawText, req.Title, req.Segments)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.store.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sess, err := h.store.Load(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, sess)
}

type renameSessionRequest struct {
	Title string `json:"title"`
}

// PATCH /api/sessions/:id
func (h *SessionHandler) Rename(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req renameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	if err := h.store.Rename(c.Request.Context(), id, req.Title); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"id": id, "title": req.Title})
}

// DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id})
}
