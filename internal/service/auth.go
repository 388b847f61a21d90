package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is how long a session token stays valid
const TokenTTL = 24 * time.Hour

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password bcrypt will hash
const MaxPasswordBytes = 72

// PasswordPolicyMessage describes the signup password policy
const PasswordPolicyMessage = "Password must be 8 to 72 characters with one uppercase letter and one number."

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// ValidPassword reports whether password satisfies the signup policy:
// at least eight characters, at most 72 bytes, one ASCII uppercase letter
// and one ASCII digit.
func ValidPassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return false
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && digit
}

// Register creates a user with a bcrypt password hash
func (s *AuthService) Register(ctx context.Context, username, password string, firstName, lastName *string) (*types.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, types.NewValidationError("", "Username and password are required.")
	}
	if !ValidPassword(password) {
		return nil, types.NewValidationError("password", PasswordPolicyMessage)
	}

	db := s.db.WithContext(ctx)

	// Check if user already exists
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, types.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    optional(firstName),
		LastName:     optional(lastName),
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent signup for the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info(ctx).Uint("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return publicUser(&user), nil
}

// Login checks a username and password pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*types.PublicUser, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User not found.")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredential
	}

	return publicUser(&user), nil
}

// GenerateToken issues an HS256 session token for user that expires after TokenTTL
func (s *AuthService) GenerateToken(user *types.PublicUser) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses a session token. Any failure, including expiry and a
// foreign signing method, is reported as types.ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 || claims.Username == "" {
		return nil, types.ErrInvalidToken
	}

	return claims, nil
}

func publicUser(user *models.User) *types.PublicUser {
	createdAt := user.CreatedAt
	return &types.PublicUser{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: &createdAt,
	}
}

// optional maps blank strings to nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
