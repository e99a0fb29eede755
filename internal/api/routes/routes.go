package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wenlu-app/wenlu/internal/api/handlers"
)

type Deps struct {
	Word         *handlers.WordHandler
	Conversation *handlers.ConversationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/words", d.Word.Create)
	r.GET("/words", d.Word.List)
	r.GET("/words/:word_id", d.Word.Get)

	r.POST("/words/:word_id/conversation", d.Conversation.GenerateText)
	r.GET("/words/:word_id/conversation", d.Conversation.GetCached)
	r.POST("/words/:word_id/conversation/turns/:turn_index/audio", d.Conversation.GenerateTurnAudio)
}
