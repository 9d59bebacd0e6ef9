package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"SlowDown/models"
	"SlowDown/repositories"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const sessionTokenTTL = 7 * 24 * time.Hour

// TokenVerifier checks the external identity token. *auth.Client from the
// Firebase SDK satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo    repositories.UserRepository
	SessionRepo repositories.SessionRepository
	Verifier    TokenVerifier
	JWTSecret   []byte
	AdminEmails []string
	Log         zerolog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, verifier TokenVerifier, jwtSecret []byte, adminEmails []string, log zerolog.Logger) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Verifier:    verifier,
		JWTSecret:   jwtSecret,
		AdminEmails: adminEmails,
		Log:         log.With().Str("component", "auth").Logger(),
	}
}

// SignInWithGoogle exchanges a verified Google identity token for a session
// token, creating the user on first sign-in. The role is decided once, at
// creation, from the admin allow-list. Returns the user, the session token
// and whether the user was just created.
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken, deviceID string) (models.User, string, bool, error) {
	if idToken == "" {
		return models.User{}, "", false, fmt.Errorf("%w: id token is required", ErrInvalidInput)
	}

	verified, err := s.Verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.User{}, "", false, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := verified.Claims["email"].(string)
	if email == "" {
		return models.User{}, "", false, fmt.Errorf("%w: token carries no email", ErrInvalidToken)
	}
	email = strings.ToLower(email)
	name, _ := verified.Claims["name"].(string)
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	photo, _ := verified.Claims["picture"].(string)

	user, err := s.UserRepo.FindByEmail(email)
	isNew := false
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		role := s.roleFor(email)
		limit := models.DefaultDailyLimit
		if role == models.RoleAdmin {
			limit = models.AdminDailyLimit
		}
		user = models.User{
			Email:             email,
			DisplayName:       name,
			PhotoURL:          photo,
			Role:              role,
			DailyLimitMinutes: limit,
		}
		if err := s.UserRepo.Create(&user); err != nil {
			return models.User{}, "", false, err
		}
		isNew = true
		s.Log.Info().Str("email", email).Str("role", role).Msg("new user created")
	case err != nil:
		return models.User{}, "", false, err
	default:
		user.DisplayName = name
		user.PhotoURL = photo
		if err := s.UserRepo.Save(user); err != nil {
			return models.User{}, "", false, err
		}
	}

	if user.IsBlocked {
		return models.User{}, "", false, ErrAccountBlocked
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", false, err
	}

	session := models.Session{
		UserID:       user.ID,
		DeviceID:     deviceID,
		TokenHash:    hashToken(token),
		LastActivity: time.Now(),
		IsActive:     true,
	}
	if err := s.SessionRepo.Create(&session); err != nil {
		// Sessions are bookkeeping; sign-in still succeeds.
		s.Log.Warn().Err(err).Str("user", user.ID).Msg("failed to record session")
	}

	return user, token, isNew, nil
}

// Me returns the current user record.
func (s *AuthService) Me(userID string) (models.User, error) {
	return s.UserRepo.FindByID(userID)
}

// Logout deactivates the session matching the presented token.
func (s *AuthService) Logout(userID, token string) error {
	sessions, err := s.SessionRepo.FindActiveByUser(userID)
	if err != nil {
		return err
	}
	digest := tokenDigest(token)
	for _, session := range sessions {
		if bcrypt.CompareHashAndPassword([]byte(session.TokenHash), []byte(digest)) == nil {
			return s.SessionRepo.Deactivate(session.ID)
		}
	}
	return nil
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (Claims, error) {
	return ParseSessionToken(tokenString, s.JWTSecret)
}

// ParseSessionToken validates an HS256 session token against the secret.
func ParseSessionToken(tokenString string, secret []byte) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

func (s *AuthService) roleFor(email string) string {
	for _, admin := range s.AdminEmails {
		if admin == email {
			return models.RoleAdmin
		}
	}
	return models.RoleUser
}

// tokenDigest shortens the token below bcrypt's input limit.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func hashToken(token string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(tokenDigest(token)), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hashed)
}
