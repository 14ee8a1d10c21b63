package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adeel/roomshare-backend/auth/middleware"
	"github.com/adeel/roomshare-backend/auth/oauth"
	"github.com/adeel/roomshare-backend/handlers"
)

func Register(r *gin.Engine, h *handlers.Handler, oa *oauth.Handler) {
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.POST("/refresh", h.Refresh)
	authGroup.GET("/session", middleware.AuthRequired(), h.Session)

	r.GET("/auth/:provider", oa.Begin)
	r.GET("/auth/:provider/callback", oa.Callback)

	roomGroup := r.Group("/api/rooms")
	roomGroup.GET("", middleware.AuthRequired(), h.ListRooms)
	roomGroup.POST("", middleware.AuthRequired(), h.CreateRoom)
	roomGroup.GET("/:key", middleware.AuthOptional(), h.GetRoom)
	roomGroup.POST("/:key/verify-pin", h.VerifyPin)
	roomGroup.GET("/:key/qr", middleware.AuthOptional(), h.ShareQR)
	roomGroup.POST("/:key/files", middleware.AuthRequired(), h.UploadFiles)
	roomGroup.DELETE("/:key", middleware.AuthRequired(), h.DeleteRoom)

	r.DELETE("/api/files/:id", middleware.AuthRequired(), h.DeleteFile)
	r.DELETE("/api/account", middleware.AuthRequired(), h.DeleteAccount)
}
