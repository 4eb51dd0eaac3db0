package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/queue/streams"
)

// DocumentsHandler enqueues articles for processing.
type DocumentsHandler struct {
	Publisher *streams.Publisher
	Stream    string
	InputDir  string
	OutputDir string
}

// Register mounts the document routes on g.
func (h *DocumentsHandler) Register(g *echo.Group) {
	g.POST("/documents", h.enqueue)
}

type enqueueRequest struct {
	ArticleID string `json:"article_id"`
	InputDir  string `json:"input_dir,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
	Source    string `json:"source,omitempty"`
}

type enqueueResponse struct {
	EventID   string `json:"event_id"`
	ArticleID string `json:"article_id"`
}

func (h *DocumentsHandler) enqueue(c echo.Context) error {
	var req enqueueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.ArticleID = strings.TrimSpace(req.ArticleID)
	if req.ArticleID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "article_id is required")
	}

	job := streams.DocumentJob{
		ArticleID: req.ArticleID,
		InputDir:  req.InputDir,
		OutputDir: req.OutputDir,
		Source:    req.Source,
	}
	if job.InputDir == "" {
		job.InputDir = h.InputDir
	}
	if job.OutputDir == "" {
		job.OutputDir = h.OutputDir
	}

	id, err := h.Publisher.PublishJob(c.Request().Context(), h.Stream, job)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "enqueue failed")
	}
	return c.JSON(http.StatusAccepted, enqueueResponse{EventID: id, ArticleID: req.ArticleID})
}
