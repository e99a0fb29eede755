package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wenlu-app/wenlu/internal/services"
	"github.com/wenlu-app/wenlu/internal/utils"
)

type WordHandler struct {
	svc services.WordService
}

func NewWordHandler(svc services.WordService) *WordHandler {
	return &WordHandler{svc: svc}
}

type CreateWordRequest struct {
	Chinese string   `json:"chinese" binding:"required"`
	Pinyin  string   `json:"pinyin"`
	English string   `json:"english"`
	Tags    []string `json:"tags"`
}

func (h *WordHandler) Create(c *gin.Context) {
	var req CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WordHandler.Create", "invalid request body", err))
		return
	}

	var tagsJSON []byte
	if len(req.Tags) > 0 {
		tagsJSON, _ = json.Marshal(req.Tags)
	}

	w, err := h.svc.Create(c.Request.Context(), req.Chinese, req.Pinyin, req.English, tagsJSON)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, w)
}

func (h *WordHandler) Get(c *gin.Context) {
	w, err := h.svc.Get(c.Request.Context(), c.Param("word_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *WordHandler) List(c *gin.Context) {
	limit := 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = n
		}
	}

	rows, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words": rows,
		"count": len(rows),
	})
}
