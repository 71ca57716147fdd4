package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/repository"
)

// ErrNoProviderEmail means the identity provider returned a profile
// without a usable email; the login attempt cannot proceed.
var ErrNoProviderEmail = errors.New("no email found from google profile")

// TokenClaims is the payload carried by every signed token. Type is only
// set on refresh tokens and is checked on use, so a refresh token can
// never be replayed as an access token.
type TokenClaims struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// GoogleProfile is the subset of the provider profile the linkage needs.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)

	IssueAccessToken(userID string) (string, error)
	IssueAdminToken(adminID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyUserToken(token string) (string, error)
	VerifyAdminToken(token string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)

	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*models.User, error)
	LinkGoogleProfile(ctx context.Context, profile GoogleProfile) (*models.User, error)
}

type SignupRequest struct {
	Email          string
	Password       string
	Name           string
	ProfilePicture string
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	google   *oauth2.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		google: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			Endpoint:     googleOAuth.Endpoint,
			Scopes:       []string{"profile", "email"},
			RedirectURL:  cfg.BackendURL + "/api/user/auth/google/callback",
		},
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
	}

	user := &models.User{
		Email:          req.Email,
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	}

	if err := s.userRepo.Create(ctx, user, req.Password); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		// Uniform failure: the caller cannot tell a missing account from
		// a wrong password.
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

func (s *authService) IssueAccessToken(userID string) (string, error) {
	return signToken(userID, "", s.cfg.JWTSecret, s.cfg.AccessTokenDuration)
}

func (s *authService) IssueAdminToken(adminID string) (string, error) {
	return signToken(adminID, "", s.cfg.AdminJWTSecret, s.cfg.AccessTokenDuration)
}

func (s *authService) IssueRefreshToken(userID string) (string, error) {
	return signToken(userID, "refresh", s.cfg.JWTRefreshSecret, s.cfg.RefreshTokenDuration)
}

func (s *authService) VerifyUserToken(token string) (string, error) {
	claims, err := verifyToken(token, s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

func (s *authService) VerifyAdminToken(token string) (string, error) {
	claims, err := verifyToken(token, s.cfg.AdminJWTSecret)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := verifyToken(refreshToken, s.cfg.JWTRefreshSecret)
	if err != nil {
		return "", err
	}

	if claims.Type != "refresh" {
		return "", fmt.Errorf("not a refresh token: %w", models.ErrTokenInvalid)
	}

	user, err := s.userRepo.GetByID(ctx, claims.ID)
	if err != nil {
		return "", err
	}

	return s.IssueAccessToken(user.UserID)
}

func signToken(principalID, tokenType, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		ID:   principalID,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func verifyToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w", models.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}

	return claims, nil
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.google.AuthCodeURL(state)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*models.User, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	profile, err := fetchGoogleProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch google profile: %w", err)
	}

	return s.LinkGoogleProfile(ctx, *profile)
}

// LinkGoogleProfile reconciles a Google profile with the user store.
// Resolution is by email: an existing account gains the google id (and a
// picture, if it had none) but keeps its password hash and any picture it
// already has, so provider login cannot take over a password account's
// data. A new account gets a random unguessable password.
func (s *authService) LinkGoogleProfile(ctx context.Context, profile GoogleProfile) (*models.User, error) {
	if profile.Email == "" {
		return nil, ErrNoProviderEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		changed := false
		if user.GoogleID == nil && profile.ID != "" {
			googleID := profile.ID
			user.GoogleID = &googleID
			changed = true
		}
		if user.ProfilePicture == "" && profile.Picture != "" {
			user.ProfilePicture = profile.Picture
			changed = true
		}
		if changed {
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to link google profile: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	googleID := profile.ID
	user = &models.User{
		Email:          profile.Email,
		Name:           clampName(profile.Name),
		GoogleID:       &googleID,
		ProfilePicture: profile.Picture,
	}

	// Random password so the account satisfies password-or-provider but
	// can never be logged into with one.
	if err := s.userRepo.Create(ctx, user, uuid.New().String()+uuid.New().String()); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	return user, nil
}

// clampName fits a provider display name into the 2-15 char constraint.
func clampName(name string) string {
	runes := []rune(name)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	if len(runes) < 2 {
		return "user"
	}
	return name
}

func fetchGoogleProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &profile, nil
}
