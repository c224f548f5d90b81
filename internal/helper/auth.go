package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookieName = "session_token"
	SessionTTL        = 24 * time.Hour

	bcryptCost = 12
)

type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{
		Secret: s,
	}
}

// GenerateSessionToken mints the signed token that goes into the session
// cookie. The jti is also the key of the redis allowlist entry, so the token
// alone is not enough to hold a session open after logout.
func (a Auth) GenerateSessionToken(userID uint, email string) (token string, sessionID string, err error) {
	if userID == 0 || email == "" {
		return "", "", errors.New("required inputs are missing to generate token")
	}

	sessionID = uuid.New().String()
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"jti":     sessionID,
		"iat":     now.Unix(),
		"exp":     now.Add(SessionTTL).Unix(),
	})

	token, err = t.SignedString([]byte(a.Secret))
	if err != nil {
		return "", "", errors.New("unable to sign the token")
	}

	return token, sessionID, nil
}

func (a Auth) VerifySessionToken(tokenString string) (dto.SessionClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.SessionClaims{}, errors.New("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.SessionClaims{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.SessionClaims{}, errors.New("invalid token claims")
	}

	expAny, ok := claims["exp"]
	if !ok {
		return dto.SessionClaims{}, errors.New("missing expiry")
	}
	expFloat, ok := expAny.(float64)
	if !ok {
		return dto.SessionClaims{}, errors.New("invalid expiry type")
	}
	if float64(time.Now().Unix()) > expFloat {
		return dto.SessionClaims{}, errors.New("token expired")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return dto.SessionClaims{}, errors.New("invalid user_id claim")
	}
	email, _ := claims["email"].(string)
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return dto.SessionClaims{}, errors.New("missing session id")
	}

	return dto.SessionClaims{
		UserID:    uint(userIDFloat),
		Email:     email,
		SessionID: sessionID,
	}, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.SessionClaims, error) {
	u := ctx.Locals("session")
	claims, ok := u.(dto.SessionClaims)
	if !ok {
		return dto.SessionClaims{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
