package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/adeel/roomshare-backend/auth/middleware"
	"github.com/adeel/roomshare-backend/auth/oauth"
	"github.com/adeel/roomshare-backend/handlers"
	"github.com/adeel/roomshare-backend/initializers"
	"github.com/adeel/roomshare-backend/jobs"
	"github.com/adeel/roomshare-backend/rooms"
	"github.com/adeel/roomshare-backend/routes"
	"github.com/adeel/roomshare-backend/storage"
	"github.com/adeel/roomshare-backend/store"
)

const defaultPort = "8080"

func main() {
	initializers.ConnectToDatabase()
	initializers.InitAWS()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0, // browsing-session scoped, grants die with the browser
		HttpOnly: true,
		Secure:   true,
	})
	oauth.InitProviders(sessionStore)

	st := store.New(initializers.DB)
	objects := storage.NewS3Store(initializers.S3Client, initializers.S3Bucket, initializers.S3PublicURL)

	access := rooms.NewAccessController(st)
	uploads := rooms.NewUploadOrchestrator(st, objects)
	lifecycle := rooms.NewLifecycleManager(st, st, st, objects)

	h := handlers.New(st, access, uploads, lifecycle, frontendURL)
	oa := oauth.New(st, frontendURL)

	jobs.StartOrphanSweeper(initializers.DB, objects)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(
		middleware.RateLimitMiddleware(),
		sessions.Sessions("roomshare_session", sessionStore),
	)

	routes.Register(router, h, oa)

	log.Printf("listening on :%s", port)
	log.Fatal(router.Run(":" + port))
}
