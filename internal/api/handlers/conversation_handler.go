package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wenlu-app/wenlu/internal/services"
	"github.com/wenlu-app/wenlu/internal/utils"
)

// Provider calls are bounded here: the handler is the caller-supplied
// timeout layer for the generation pipeline.
const (
	textGenTimeout  = 30 * time.Second
	audioGenTimeout = 20 * time.Second
)

type ConversationHandler struct {
	text  services.ConversationService
	audio services.TurnAudioService
}

func NewConversationHandler(text services.ConversationService, audio services.TurnAudioService) *ConversationHandler {
	return &ConversationHandler{text: text, audio: audio}
}

type GenerateTextRequest struct {
	Word             string `json:"word" binding:"required"`
	GeneratorVersion string `json:"generator_version"`
}

func (h *ConversationHandler) GenerateText(c *gin.Context) {
	wordID := c.Param("word_id")

	var req GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ConversationHandler.GenerateText", "invalid request body", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), textGenTimeout)
	defer cancel()

	conv, err := h.text.GenerateText(ctx, wordID, req.Word, req.GeneratorVersion)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) GetCached(c *gin.Context) {
	conv, err := h.text.GetCached(c.Request.Context(), c.Param("word_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

type GenerateTurnAudioRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (h *ConversationHandler) GenerateTurnAudio(c *gin.Context) {
	const op = "ConversationHandler.GenerateTurnAudio"

	wordID := c.Param("word_id")

	turnIndex, err := strconv.Atoi(c.Param("turn_index"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "turn_index must be an integer", err))
		return
	}

	var req GenerateTurnAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), audioGenTimeout)
	defer cancel()

	res, err := h.audio.GenerateTurnAudio(ctx, wordID, turnIndex, req.Text, req.Voice)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
