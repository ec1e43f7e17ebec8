package controllers

import (
	"strconv"
	"strings"
	"time"

	"inventara/models"
	"inventara/repository"
	"inventara/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// UserController menangani register, login dan data user.
type UserController struct {
	Secret string
	TTL    time.Duration
}

func NewUserController(secret string, ttl time.Duration) *UserController {
	return &UserController{Secret: secret, TTL: ttl}
}

// HashPassword dipakai juga oleh seeding admin default.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register godoc
//
//	@Summary		Register user
//	@Description	Registrasi publik selalu membuat role user. Admin memakai POST /users untuk role lain.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.RegisterInput	true	"Data user"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		409		{object}	map[string]interface{}	"Email sudah terdaftar"
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/users/register [post]
func (uc *UserController) Register(c *fiber.Ctx) error {
	return uc.createUser(c, false)
}

// CreateUser godoc
//
//	@Summary	Create user (admin only)
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.RegisterInput	true	"Data user"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	409		{object}	map[string]interface{}	"Email sudah terdaftar"
//	@Router		/users [post]
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	return uc.createUser(c, true)
}

func (uc *UserController) createUser(c *fiber.Ctx, allowRole bool) error {
	var in models.RegisterInput
	if done, err := bind(c, &in); done {
		return err
	}
	role := models.RoleUser
	if allowRole && in.Role != "" {
		role = in.Role
	}
	ctx := c.UserContext()

	if _, err := repository.GetUserByEmail(ctx, in.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email sudah terdaftar"})
	}

	id, err := repository.GenerateID(ctx, "user")
	if err != nil {
		return fail(c, "Gagal generate ID user", err)
	}
	hashed, err := HashPassword(in.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Gagal hash password"})
	}

	user := models.User{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Email:       in.Email,
		Role:        role,
		Division:    in.Division,
		Place:       in.Place,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Photo:       in.Photo,
		Password:    hashed,
		CreatedAt:   time.Now(),
	}
	if err := repository.CreateUser(ctx, &user); err != nil {
		return fail(c, "Gagal register user", err)
	}
	return created(c, "Register berhasil", user)
}

// Login godoc
//
//	@Summary		Login
//	@Description	Mengembalikan JWT HS256 berisi id, name, email dan role
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.LoginInput	true	"Email dan password"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		401		{object}	map[string]interface{}
//	@Failure		429		{object}	map[string]interface{}	"Terlalu banyak percobaan"
//	@Router			/users/login [post]
func (uc *UserController) Login(c *fiber.Ctx) error {
	var in models.LoginInput
	if done, err := bind(c, &in); done {
		return err
	}

	user, err := repository.GetUserByEmail(c.UserContext(), in.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Email atau password salah"})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Email atau password salah"})
	}

	token, err := utils.GenerateToken(uc.Secret, uc.TTL, user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Gagal membuat token",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   token,
		"user":    user,
	})
}

// Me godoc
//
//	@Summary	Profil user yang sedang login
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/users/me [get]
func (uc *UserController) Me(c *fiber.Ctx) error {
	user, err := repository.GetUserByID(c.UserContext(), actorFrom(c).ID)
	if err != nil {
		return fail(c, "User tidak ditemukan", err)
	}
	return c.JSON(user)
}

// GetAllUsers godoc
//
//	@Summary	Get all users (admin only)
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		models.User
//	@Failure	403	{object}	map[string]interface{}
//	@Router		/users [get]
func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	users, err := repository.GetAllUsers(c.UserContext())
	if err != nil {
		return fail(c, "Gagal mengambil data user", err)
	}
	return c.JSON(users)
}

// GetLogs godoc
//
//	@Summary	Log aktivitas (admin only)
//	@Tags		Logs
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query	int	false	"Jumlah log, default 100"
//	@Success	200		{array}	models.Log
//	@Router		/logs [get]
func GetLogs(c *fiber.Ctx) error {
	limit, err := strconv.ParseInt(c.Query("limit", "100"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 100
	}
	logs, err := repository.GetLogs(c.UserContext(), limit)
	if err != nil {
		return fail(c, "Gagal mengambil log", err)
	}
	return c.JSON(logs)
}
