package controllers

import (
	"errors"
	"net/url"
	"strings"

	"inventara/logging"
	"inventara/middleware"
	"inventara/services"
	"inventara/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func actorFrom(c *fiber.Ctx) services.Actor {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	role, _ := c.Locals(middleware.LocalUserRole).(string)
	return services.Actor{ID: id, Role: role}
}

// errorStatus memetakan sentinel error service ke HTTP status.
func errorStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs), errors.Is(err, services.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// fail menulis body error standar {"message", "error"}.
func fail(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Path()).Msg(message)
	}
	body := fiber.Map{
		"message": message,
		"error":   err.Error(),
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		body["message"] = "Validasi gagal"
		body["errors"] = verrs
	}
	return c.Status(status).JSON(body)
}

// bind membaca body ke dst lalu memvalidasi tag validate. Bila done true,
// response error sudah ditulis dan handler cukup mengembalikan err.
func bind(c *fiber.Ctx, dst any) (done bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Request tidak valid",
			"error":   err.Error(),
		})
	}
	if err := validation.Struct(dst); err != nil {
		return true, fail(c, "Validasi gagal", err)
	}
	return false, nil
}

// param mengembalikan path param yang sudah di-unescape (nama tempat dan plat
// bisa berisi spasi).
func param(c *fiber.Ctx, name string) string {
	v := c.Params(name)
	if un, err := url.PathUnescape(v); err == nil {
		v = un
	}
	return strings.TrimSpace(utils.CopyString(v))
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(fiber.Map{"message": message, "data": data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message, "data": data})
}
