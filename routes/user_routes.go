package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h Handlers) {
	user := app.Group("/users")

	// publik
	login := []fiber.Handler{h.Users.Login}
	if h.LoginLimiter != nil {
		login = append([]fiber.Handler{h.LoginLimiter}, login...)
	}
	user.Post("/login", login...)
	user.Post("/register", h.Users.Register)

	user.Get("/me", h.jwt(), h.Users.Me)

	// admin only
	user.Get("/", h.jwt(), h.Authz.Require(middleware.ObjUser, middleware.ActRead), h.Users.GetAllUsers)
	user.Post("/", h.jwt(), h.Authz.Require(middleware.ObjUser, middleware.ActWrite), h.Users.CreateUser)
}
