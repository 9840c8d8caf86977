package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"doodleboard/internal/middleware"
	"doodleboard/internal/models"
	"doodleboard/internal/observability"
	"doodleboard/internal/session"
	"doodleboard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
	}

	// The unique index on username is the source of truth; the repository
	// maps a duplicate insert to a conflict, so two racing registrations
	// cannot both succeed.
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, models.StatusForError(createErr), createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered",
		"user":    user,
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	// Same response for unknown username and wrong password.
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// Server-side session keyed by an opaque cookie. If Redis is down the
	// client still gets the bearer token, so login keeps working.
	if s.sessions.Available() {
		sid, sessErr := s.sessions.Create(c.Context(), token)
		if sessErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session creation failed, bearer-only login",
				"error", sessErr.Error())
		} else {
			c.Cookie(&fiber.Cookie{
				Name:     session.CookieName,
				Value:    sid,
				MaxAge:   int(s.sessions.TTL().Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   s.config.Env == "production",
				Path:     "/",
			})
		}
	}

	observability.SessionsIssued.Inc()

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// Logout handles POST /logout. Destroying an already-dead session is fine;
// logout never fails from the client's point of view.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(session.CookieName); sid != "" && s.sessions.Available() {
		if err := s.sessions.Destroy(c.Context(), sid); err != nil && !errors.Is(err, session.ErrNotFound) {
			middleware.Logger.WarnContext(c.UserContext(), "session destroy failed",
				"error", err.Error())
		}
	}
	c.ClearCookie(session.CookieName)

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// GetMe handles GET /me
func (s *Server) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"jti":      uuid.NewString(),
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(sessionTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
