// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	LocUserID = "user_id"
	LocEmail  = "user_email"
	LocRoles  = "user_roles"
	LocClaims = "jwt_claims"
)

type AuthJWTOpts struct {
	// Secret is the Supabase project JWT secret (HS256).
	Secret string
	// Audience defaults to "authenticated" (Supabase access tokens).
	Audience            string
	AllowCookieFallback bool
}

// AuthJWT verifies Supabase access tokens and hydrates user locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}
	aud := o.Audience
	if aud == "" {
		aud = "authenticated"
	}

	return func(c *fiber.Ctx) error {
		raw := bearerToken(c, o.AllowCookieFallback)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims := jwt.MapClaims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		if !claims.VerifyAudience(aud, true) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token audience")
		}

		sub := strClaim(claims, "sub")
		if sub == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals(LocClaims, claims)
		c.Locals(LocUserID, sub)
		c.Locals(LocEmail, strings.ToLower(strClaim(claims, "email")))
		c.Locals(LocRoles, appRoles(claims))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx, cookieFallback bool) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if cookieFallback {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// appRoles reads app_metadata.role and app_metadata.roles (admin-managed,
// not writable by the user in Supabase).
func appRoles(claims jwt.MapClaims) []string {
	meta, ok := claims["app_metadata"].(map[string]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, 2)
	if s, ok := meta["role"].(string); ok && strings.TrimSpace(s) != "" {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	if arr, ok := meta["roles"].([]any); ok {
		for _, it := range arr {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
	}
	return out
}
