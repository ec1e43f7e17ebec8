package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func RuanganRoutes(app *fiber.App, h Handlers) {
	ruangan := app.Group("/ruangans", h.jwt())
	read := h.Authz.Require(middleware.ObjMaster, middleware.ActRead)
	write := h.Authz.Require(middleware.ObjMaster, middleware.ActWrite)

	ruangan.Get("/", read, h.Aset.GetAllRuangan)
	ruangan.Get("/:id/barangs", read, h.Aset.GetBarangOfRuangan)
	ruangan.Get("/:id", read, h.Aset.GetRuanganByID)

	ruangan.Post("/", write, h.Aset.CreateRuangan)
	ruangan.Post("/import", write, h.Aset.ImportRuangan)
	ruangan.Delete("/bulk", write, h.Aset.BulkDeleteRuangan)
	ruangan.Put("/:code", write, h.Aset.UpdateRuangan)
	ruangan.Delete("/:code", write, h.Aset.DeleteRuangan)
}
