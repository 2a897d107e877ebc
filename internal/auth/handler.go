package auth

import (
	"errors"
	"strings"

	"fleet-backend/internal/database"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

const minPasswordLen = 8

func (r *RegisterRequest) normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
	}
	if len(r.Password) < minPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
	}
	return nil
}

func createUser(body RegisterRequest, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
	}

	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "User could not be created")
	}
	return &user, nil
}

// POST /api/auth/register-admin
// Only works while no admin exists.
func RegisterAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := body.normalize(); err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin already exists")
		}

		user, err := createUser(body, models.RoleAdmin)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// POST /api/admin/users (admin)
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := body.normalize(); err != nil {
			return err
		}
		if body.Role != models.RoleAdmin && body.Role != models.RoleAccountant {
			return fiber.NewError(fiber.StatusBadRequest, "role must be admin or accountant")
		}

		user, err := createUser(body, body.Role)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// GET /api/admin/users (admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Users could not be listed")
		}
		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, toUserResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

func LoginHandler(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong email or password")
		}

		token, err := GenerateToken(secret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(&user),
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, name := Actor(c)
		return c.JSON(fiber.Map{
			"user_id": id,
			"name":    name,
			"role":    c.Locals(CtxUserRoleKey),
		})
	}
}
