package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/service"
)

type ctxKey int

const (
	userKey ctxKey = iota
	adminKey
	isCreatorKey
)

// UserFrom returns the authenticated user attached to the request, if any.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// AdminFrom returns the authenticated admin attached to the request, if any.
func AdminFrom(ctx context.Context) *models.Admin {
	admin, _ := ctx.Value(adminKey).(*models.Admin)
	return admin
}

// IsCreator reports whether the resolved principal holds content-moderation
// rights (a creator user, or any admin).
func IsCreator(ctx context.Context) bool {
	isCreator, _ := ctx.Value(isCreatorKey).(bool)
	return isCreator
}

// WithUser attaches a user principal the way Authenticate does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, isCreatorKey, user.Creator)
}

// WithAdmin attaches an admin principal; admins always carry moderation
// rights.
func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	ctx = context.WithValue(ctx, adminKey, admin)
	return context.WithValue(ctx, isCreatorKey, true)
}

type Middleware struct {
	auth      service.AuthService
	users     service.UserService
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
}

func New(auth service.AuthService, users service.UserService, userRepo repository.UserRepository, adminRepo repository.AdminRepository) *Middleware {
	return &Middleware{auth: auth, users: users, userRepo: userRepo, adminRepo: adminRepo}
}

type MiddlewareFunc func(http.Handler) http.Handler

func Chain(h http.Handler, middlewares ...MiddlewareFunc) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

// extractToken pulls the bearer token out of the Authorization header.
// A missing "Bearer " prefix is tolerated; the raw value is tried as-is.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// Authenticate resolves the bearer token to exactly one principal kind:
// the user secret is tried first, then the admin secret. Failures are
// reported uniformly so a caller cannot probe which verifier almost
// matched. Blocked users are not rejected here; routes that need that
// use RequireUser instead.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeUnauthenticated(w)
			return
		}

		ctx := r.Context()

		if userID, err := m.auth.VerifyUserToken(token); err == nil {
			if user, err := m.userRepo.GetByID(ctx, userID); err == nil {
				next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
				return
			}
		}

		adminID, err := m.auth.VerifyAdminToken(token)
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		admin, err := m.adminRepo.GetByID(ctx, adminID)
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdmin(ctx, admin)))
	})
}

// RequireUser verifies strictly against the user secret and, unlike
// Authenticate, refuses blocked accounts.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeUnauthenticated(w)
			return
		}

		userID, err := m.auth.VerifyUserToken(token)
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), userID)
		if err != nil || user.Blocked {
			writeUnauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// AdminAuth verifies strictly against the admin secret; no user fallback.
func (m *Middleware) AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeUnauthenticated(w)
			return
		}

		adminID, err := m.auth.VerifyAdminToken(token)
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		admin, err := m.adminRepo.GetByID(r.Context(), adminID)
		if err != nil {
			writeUnauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}

// CreatorOrAdminOnly requires a principal with moderation rights. Must run
// after Authenticate.
func (m *Middleware) CreatorOrAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsCreator(r.Context()) {
			writeJSONError(w, "Creator or admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SuperAdminOnly requires an admin with the super role. Must run after
// Authenticate or AdminAuth; it assumes the admin is already attached.
func (m *Middleware) SuperAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := AdminFrom(r.Context())
		if admin == nil || admin.Role != models.RoleSuper {
			writeJSONError(w, "Access denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CheckPremiumExpiration lazily reverts an elapsed premium subscription
// on the authenticated user before the handler sees it.
func (m *Middleware) CheckPremiumExpiration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := UserFrom(r.Context()); user != nil {
			normalized, err := m.users.NormalizePremium(r.Context(), user, time.Now())
			if err == nil {
				ctx := context.WithValue(r.Context(), userKey, normalized)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeJSONError(w, "Please authenticate", http.StatusUnauthorized)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "msg": message})
}
