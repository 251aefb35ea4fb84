package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authhandler "github.com/manasmitra/backend/internal/handler/auth"
	chathandler "github.com/manasmitra/backend/internal/handler/chat"
	middlewarePkg "github.com/manasmitra/backend/internal/middleware"
	"github.com/manasmitra/backend/internal/service/ai"
	authservice "github.com/manasmitra/backend/internal/service/auth"
	chatservice "github.com/manasmitra/backend/internal/service/chat"
	"github.com/manasmitra/backend/internal/service/mentalhealth"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatservice.Service, aiSvc *ai.Service, mhSvc *mentalhealth.Service, authSvc *authservice.Service, tokens *authservice.TokenService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(chatSvc, aiSvc.Ready, mhSvc.Ready)
	authHandler := authhandler.New(authSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		authHandler.RegisterRoutes(api, tokens)
	})

	return r
}
