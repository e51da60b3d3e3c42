package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnemolabs/mnemo/internal/handler/chat"
	middlewarePkg "github.com/mnemolabs/mnemo/internal/middleware"
	chatService "github.com/mnemolabs/mnemo/internal/service/chat"
)

// NewRouter wires the chat store to its HTTP routes.
func NewRouter(chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc)
	chatHandler.RegisterRoutes(r)

	return r
}
