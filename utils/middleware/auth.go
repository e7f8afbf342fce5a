package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gradpath/consultancy-api/model"
	"github.com/gradpath/consultancy-api/utils/auth"
	"github.com/gradpath/consultancy-api/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware resolves opaque bearer tokens against the account store
type AuthMiddleware struct {
	db *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{db: db}
}

var errNoToken = errors.New("missing or malformed authorization header")

// authenticate resolves the Authorization header to a user. Token keys are
// opaque strings looked up in the auth_tokens table; there is no expiry.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
		return nil, errNoToken
	}

	token, err := auth.LookupToken(m.db, parts[1])
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := m.db.First(&user, token.UserID).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Required is middleware that requires a valid bearer token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if err != nil {
			if errors.Is(err, errNoToken) {
				return response.Unauthorized(c, "Missing authorization token")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid token")
			}
			return response.InternalServerError(c, "Failed to check token")
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireAdmin is middleware that requires a valid bearer token belonging to
// an admin account
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if err != nil {
			if errors.Is(err, errNoToken) {
				return response.Unauthorized(c, "Missing authorization token")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid token")
			}
			return response.InternalServerError(c, "Failed to check token")
		}

		if !user.IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// GetUser extracts the authenticated user from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// GetUserID extracts the authenticated user's id from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}
