package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chat-hall/auth"
)

// Server is the HTTP front of the chat service: a JSON API for commands
// and two WebSocket endpoints for the event streams.
type Server struct {
	log  *slog.Logger
	http *http.Server
}

func NewServer(log *slog.Logger, addr string, tokens *auth.TokenManager, h *Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/admin/login", h.AdminLogin)
	}

	authed := api.Group("", Authenticate(tokens))
	{
		authed.GET("/profile", h.Profile)
		authed.PUT("/profile", h.UpdateProfile)
		authed.GET("/profile/avatar", h.Avatar)

		authed.GET("/chats", h.ListChats)
		authed.GET("/chats/active", h.ActiveChat)
		authed.POST("/chats/:chatId/subscribe", h.Subscribe)
		authed.POST("/chats/:chatId/unsubscribe", h.Unsubscribe)

		authed.POST("/session/join", h.Join)
		authed.POST("/session/leave", h.Leave)
		authed.POST("/session/messages", h.SendMessage)
	}

	admin := authed.Group("/admin", RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:userId", h.RemoveUser)
		admin.POST("/users/:userId/promote", h.PromoteAdmin)
		admin.POST("/users/:userId/demote", h.DemoteAdmin)
		admin.PUT("/users/:userId/subscriptions/:chatId", h.ForceSubscribe)
		admin.DELETE("/users/:userId/subscriptions/:chatId", h.ForceUnsubscribe)

		admin.GET("/chats", h.ListChatSummaries)
		admin.POST("/chats", h.CreateChat)
		admin.POST("/chats/:chatId/start", h.StartChat)
		admin.POST("/chats/:chatId/end", h.EndChat)
		admin.DELETE("/chats/:chatId", h.DeleteChat)
	}

	events := router.Group("/ws", Authenticate(tokens))
	{
		events.GET("", h.ServeEvents)
		events.GET("/admin", RequireAdmin(), h.ServeAdminEvents)
	}

	return &Server{
		log: log,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until the context is canceled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
