package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func KendaraanRoutes(app *fiber.App, h Handlers) {
	kendaraan := app.Group("/kendaraans", h.jwt())
	read := h.Authz.Require(middleware.ObjMaster, middleware.ActRead)
	write := h.Authz.Require(middleware.ObjMaster, middleware.ActWrite)

	// GET untuk semua role
	kendaraan.Get("/", read, h.Aset.GetAllKendaraan)
	kendaraan.Get("/:id", read, h.Aset.GetKendaraanByID)

	// tulis hanya admin
	kendaraan.Post("/", write, h.Aset.CreateKendaraan)
	kendaraan.Post("/import", write, h.Aset.ImportKendaraan)
	kendaraan.Delete("/bulk", write, h.Aset.BulkDeleteKendaraan)
	kendaraan.Put("/:plat", write, h.Aset.UpdateKendaraan)
	kendaraan.Delete("/:plat", write, h.Aset.DeleteKendaraan)
}
