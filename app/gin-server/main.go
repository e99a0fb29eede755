package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wenlu-app/wenlu/config"
	"github.com/wenlu-app/wenlu/internal/api/handlers"
	"github.com/wenlu-app/wenlu/internal/api/middleware"
	"github.com/wenlu-app/wenlu/internal/api/routes"
	"github.com/wenlu-app/wenlu/internal/cache"
	"github.com/wenlu-app/wenlu/internal/logger"
	"github.com/wenlu-app/wenlu/internal/models"
	"github.com/wenlu-app/wenlu/internal/providers/textgen"
	"github.com/wenlu-app/wenlu/internal/providers/tts"
	pgrepo "github.com/wenlu-app/wenlu/internal/repositories/postgres"
	"github.com/wenlu-app/wenlu/internal/services"
	"github.com/wenlu-app/wenlu/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init failed")
	}
	if err := config.PostgresDB.AutoMigrate(&models.Word{}); err != nil {
		log.WithError(err).Fatal("PostgreSQL migration failed")
	}
	log.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("Redis init failed")
	}
	log.Info("Redis connected")

	// Blob store for conversation text and audio artifacts
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	blobs, err := storage.NewGCSStore(ctx, bucket)
	if err != nil {
		log.WithError(err).Fatal("GCS init failed")
	}
	defer blobs.Close()

	// External AI providers
	gen, err := textgen.NewVertexGemini(ctx,
		os.Getenv("GCP_PROJECT"),
		os.Getenv("GCP_LOCATION"),
		os.Getenv("TEXTGEN_MODEL"),
	)
	if err != nil {
		log.WithError(err).Fatal("Vertex Gemini init failed")
	}
	defer gen.Close()

	synth, err := tts.NewGoogleTTS(ctx)
	if err != nil {
		log.WithError(err).Fatal("Google TTS init failed")
	}
	defer synth.Close()

	// Services
	wordRepo := pgrepo.NewWordRepo(config.PostgresDB)
	hot := cache.NewRedisCache(config.RedisClient)

	wordSvc := services.NewWordService(wordRepo, hot)
	convSvc := services.NewConversationService(blobs, gen, textgen.Options{
		Model: os.Getenv("TEXTGEN_MODEL"),
	}, log)
	audioSvc := services.NewTurnAudioService(blobs, synth, log)

	// HTTP server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Word:         handlers.NewWordHandler(wordSvc),
		Conversation: handlers.NewConversationHandler(convSvc, audioSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
