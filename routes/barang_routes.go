package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func BarangRoutes(app *fiber.App, h Handlers) {
	barang := app.Group("/barangs", h.jwt())
	read := h.Authz.Require(middleware.ObjMaster, middleware.ActRead)
	write := h.Authz.Require(middleware.ObjMaster, middleware.ActWrite)

	barang.Get("/", read, h.Aset.GetAllBarang)
	barang.Get("/:id", read, h.Aset.GetBarangByID)

	barang.Post("/", write, h.Aset.CreateBarang)
	barang.Post("/import", write, h.Aset.ImportBarang)
	barang.Delete("/bulk", write, h.Aset.BulkDeleteBarang)
	barang.Put("/:id", write, h.Aset.UpdateBarang)
	barang.Delete("/:id", write, h.Aset.DeleteBarang)
}
