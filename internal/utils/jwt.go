package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"biogram-server/internal/config"
	"biogram-server/internal/models"
)

// DoctorSummaryScope is the only scope a doctor access token carries.
const DoctorSummaryScope = "doctor_summary"

// Token types carried in the "typ" claim.
const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

// Claims represents the JWT claims of access and refresh tokens.
type Claims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	SessionID string      `json:"session_id"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// DoctorClaims authorize a read of one patient's summary.
type DoctorClaims struct {
	PatientID string `json:"patient_id"`
	GrantID   string `json:"grant_id"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateTokens generates both access and refresh tokens for a session.
func GenerateTokens(user *models.User, sessionID string, cfg *config.Config) (accessToken string, refreshToken string, err error) {
	accessToken, err = generateAccessToken(user, sessionID, cfg)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = generateRefreshToken(user, sessionID, cfg)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func generateAccessToken(user *models.User, sessionID string, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute)
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
		TokenType: AccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

func generateRefreshToken(user *models.User, sessionID string, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.RefreshExpirationHours) * time.Hour)
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
		TokenType: RefreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// distinct per issue so two refresh tokens never hash alike
			ID:        models.NewID(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

// GenerateDoctorToken issues a doctor access token for a redeemed grant.
func GenerateDoctorToken(patientID, grantID string, ttl time.Duration, cfg *config.Config) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &DoctorClaims{
		PatientID: patientID,
		GrantID:   grantID,
		Scope:     DoctorSummaryScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        models.NewID(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   patientID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.DoctorSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign doctor access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateAccessToken validates an access token.
func ValidateAccessToken(tokenString string, secretKey string) (*Claims, error) {
	return validateToken(tokenString, secretKey, AccessTokenType)
}

// ValidateRefreshToken validates a refresh token.
func ValidateRefreshToken(tokenString string, secretKey string) (*Claims, error) {
	return validateToken(tokenString, secretKey, RefreshTokenType)
}

func validateToken(tokenString, secretKey, tokenType string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("invalid token type %q", claims.TokenType)
	}
	return claims, nil
}

// ValidateDoctorToken validates a doctor access token and its scope.
func ValidateDoctorToken(tokenString string, secretKey string) (*DoctorClaims, error) {
	claims := &DoctorClaims{}
	if err := parse(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.Scope != DoctorSummaryScope || claims.PatientID == "" {
		return nil, fmt.Errorf("invalid token scope")
	}
	return claims, nil
}

func parse(tokenString, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	return nil
}
