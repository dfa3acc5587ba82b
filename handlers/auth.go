package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/DharunKumar-K/eventpulse/config"
	"github.com/DharunKumar-K/eventpulse/database"
	httperrors "github.com/DharunKumar-K/eventpulse/errors"
	"github.com/DharunKumar-K/eventpulse/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	req := new(registerRequest)
	if err := c.BodyParser(req); err != nil {
		return httperrors.RaiseBadRequestError(c, "Please provide name, email and password")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Name) < 2 {
		return httperrors.RaiseBadRequestError(c, "Name is too short")
	}
	if !strings.Contains(req.Email, "@") {
		return httperrors.RaiseBadRequestError(c, "Please provide a valid email")
	}
	if len(req.Password) < 6 {
		return httperrors.RaiseBadRequestError(c, "Password must be at least 6 characters")
	}

	// admins are provisioned out of band, never through self-registration
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if req.Role != model.RoleUser && req.Role != model.RoleOrganizer {
		return httperrors.RaiseBadRequestError(c, "Role must be user or organizer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error creating account")
	}

	user := model.User{
		Id:             primitive.NewObjectID(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           req.Role,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.users.CreateUser(c.UserContext(), user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			return httperrors.RaiseBadRequestError(c, "Email already registered")
		}
		return httperrors.RaiseInternalServerError(c, "Error creating account")
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("token issuance failed: %v", err)
		return httperrors.RaiseInternalServerError(c, "Error creating account")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return httperrors.RaiseBadRequestError(c, "Please provide email and password")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return httperrors.RaiseUnauthenticatedError(c, "Invalid credentials")
		}
		return httperrors.RaiseInternalServerError(c, "Error logging in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid credentials")
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("token issuance failed: %v", err)
		return httperrors.RaiseInternalServerError(c, "Error logging in")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	userId, _, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	user, err := h.users.GetUserById(c.UserContext(), userId)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return httperrors.RaiseNotFoundError(c, "User not found")
		}
		return httperrors.RaiseInternalServerError(c, "Error fetching profile")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user})
}

func issueToken(user model.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = user.Id.Hex()
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(config.TOKEN_TTL).Unix()

	sign, err := config.GetSecret("SIGN")
	if err != nil {
		return "", err
	}

	return token.SignedString([]byte(sign))
}
