package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// Context keys
const (
	UserIDKey = "user_id"
	RoleKey   = "user_role"

	bearerPrefix = "Bearer "
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims são as claims emitidas pelo Supabase Auth
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email,omitempty"`
	UserRole    string `json:"user_role,omitempty"`
	AppMetadata struct {
		Role string `json:"role,omitempty"`
	} `json:"app_metadata"`
}

// Role resolve o papel do usuário; a claim user_role tem prioridade sobre app_metadata
func (c *Claims) Role() entities.Role {
	if c.UserRole != "" {
		return entities.ParseRole(c.UserRole)
	}
	return entities.ParseRole(c.AppMetadata.Role)
}

// ParseToken valida um token HS256 assinado com o segredo do projeto
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Auth exige um bearer token válido e guarda o usuário e o papel no contexto
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrMissingToken.Error()})
		}

		claims, err := ParseToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)), key)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals(UserIDKey, claims.Subject)
		c.Locals(RoleKey, claims.Role())
		return c.Next()
	}
}

// RequireAdmin bloqueia quem não tem papel de administrador
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if RoleOf(c) != entities.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}
		return c.Next()
	}
}

// UserID devolve o usuário autenticado, ou "" se a rota é pública
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

// RoleOf devolve o papel do usuário autenticado
func RoleOf(c *fiber.Ctx) entities.Role {
	role, ok := c.Locals(RoleKey).(entities.Role)
	if !ok {
		return entities.RoleMember
	}
	return role
}
