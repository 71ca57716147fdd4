package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AdithyaSiva5/NoteExchange-Backend/cmd/app"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	handlers "github.com/AdithyaSiva5/NoteExchange-Backend/internal/handler"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecret == "" || cfg.AdminJWTSecret == "" || cfg.JWTRefreshSecret == "" {
		log.Fatal("JWT_SECRET, ADMIN_JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)
	mw := middleware.New(services.Auth, services.User, repo.User, repo.Admin)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handler.NotFoundHandler)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	// Public user routes.
	user := router.PathPrefix("/api/user").Subrouter()
	user.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	user.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	user.HandleFunc("/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	user.HandleFunc("/auth/google", handler.GoogleAuth).Methods(http.MethodGet)
	user.HandleFunc("/auth/google/callback", handler.GoogleAuthCallback).Methods(http.MethodGet)

	// Account routes: strict user tokens, blocked users rejected, premium
	// expiry normalized before the handler runs.
	account := router.PathPrefix("/api/user").Subrouter()
	account.Use(mw.RequireUser, mw.CheckPremiumExpiration)
	account.HandleFunc("/profile", handler.GetProfile).Methods(http.MethodGet)
	account.HandleFunc("/update-password", handler.UpdatePassword).Methods(http.MethodPut)
	account.HandleFunc("/update-name", handler.UpdateName).Methods(http.MethodPut)
	account.HandleFunc("/premium", handler.ActivatePremium).Methods(http.MethodPost)
	account.HandleFunc("/profile-picture", handler.UpdateProfilePicture).Methods(http.MethodPut)

	// Public post listing; the token, if any, is parsed best-effort.
	router.HandleFunc("/api/posts/public", handler.GetPublicPosts).Methods(http.MethodGet)

	// Post routes resolve either principal kind.
	posts := router.PathPrefix("/api/posts").Subrouter()
	posts.Use(mw.Authenticate, mw.CheckPremiumExpiration)
	posts.HandleFunc("", handler.CreatePost).Methods(http.MethodPost)
	posts.Handle("", mw.CreatorOrAdminOnly(http.HandlerFunc(handler.GetPosts))).Methods(http.MethodGet)
	posts.Handle("/{id}/approve", mw.CreatorOrAdminOnly(http.HandlerFunc(handler.ApprovePost))).Methods(http.MethodPut)
	posts.Handle("/{id}/reject", mw.CreatorOrAdminOnly(http.HandlerFunc(handler.RejectPost))).Methods(http.MethodDelete)
	posts.Handle("/{id}", mw.SuperAdminOnly(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)
	posts.HandleFunc("/{id}/like", handler.ToggleLike).Methods(http.MethodPost)

	// Admin console under its obscured prefix.
	router.HandleFunc("/api/5839201/login", handler.AdminLogin).Methods(http.MethodPost)
	admin := router.PathPrefix("/api/5839201").Subrouter()
	admin.Use(mw.AdminAuth)
	admin.HandleFunc("/users", handler.AdminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/search", handler.AdminSearchUsers).Methods(http.MethodGet)
	admin.HandleFunc("/create", handler.AdminCreateAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}/toggle-creator", handler.AdminToggleCreator).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/toggle-premium", handler.AdminTogglePremium).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/toggle-block", handler.AdminToggleBlock).Methods(http.MethodPut)

	// Payment routes use the strict user gate.
	payment := router.PathPrefix("/api/payment").Subrouter()
	payment.Use(mw.RequireUser)
	payment.HandleFunc("/create-order", handler.CreateOrder).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server started on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
