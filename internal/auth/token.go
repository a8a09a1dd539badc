package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskboard-go/internal/config"
	"taskboard-go/internal/models"
	"taskboard-go/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

// Token kinds. Kind ikut ditandatangani di dalam payload supaya refresh token
// tidak pernah diterima di tempat access token dan sebaliknya.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenKind      = errors.New("wrong token kind")
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Claims struct {
	UserID int
	Role   string
	Kind   string
}

func signToken(user models.User, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"kind":    kind,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(config.SecretKey)
}

// IssueTokens menerbitkan pasangan access + refresh token untuk user.
func IssueTokens(user models.User) (TokenPair, error) {
	access, err := signToken(user, KindAccess, time.Duration(config.App.AccessTTLMin)*time.Minute)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(user, KindRefresh, time.Duration(config.App.RefreshTTLMin)*time.Minute)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func parseToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.SecretKey, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			switch {
			case vErr.Errors&jwt.ValidationErrorExpired != 0:
				return Claims{}, ErrTokenExpired
			case vErr.Errors&jwt.ValidationErrorMalformed != 0:
				return Claims{}, ErrTokenMalformed
			case vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return Claims{}, ErrTokenSignature
			}
		}
		return Claims{}, ErrTokenMalformed
	}
	if !token.Valid {
		return Claims{}, ErrTokenSignature
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	kind, ok := mapClaims["kind"].(string)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	return Claims{UserID: int(userID), Role: role, Kind: kind}, nil
}

// ValidateAccess memvalidasi access token dan mengembalikan claims-nya.
func ValidateAccess(tokenString string) (Claims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return Claims{}, err
	}
	if claims.Kind != KindAccess {
		return Claims{}, ErrTokenKind
	}
	return claims, nil
}

// Refresh menukar refresh token dengan access token baru. User dibaca ulang
// dari database supaya user yang sudah dihapus tidak bisa refresh.
func Refresh(db *sql.DB, refreshToken string) (string, error) {
	claims, err := parseToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Kind != KindRefresh {
		return "", ErrTokenKind
	}

	user, err := repository.FindUserByID(db, claims.UserID)
	if err != nil {
		return "", ErrTokenSignature
	}
	return signToken(user, KindAccess, time.Duration(config.App.AccessTTLMin)*time.Minute)
}
