package routes

import (
	"inventara/middleware"
	"inventara/models"

	"github.com/gofiber/fiber/v2"
)

func PeminjamanRoutes(app *fiber.App, h Handlers) {
	p := app.Group("/peminjaman", h.jwt())
	own := h.Authz.Require(middleware.ObjLoan, middleware.ActOwn)

	p.Get("/", own, h.Peminjaman.GetOwn)
	p.Get("/draft", own, h.Peminjaman.GetDraft)
	p.Get("/barang/:id", own, h.Peminjaman.LatestOf(models.CategoryBarang))
	p.Get("/ruangan/:id", own, h.Peminjaman.LatestOf(models.CategoryRuangan))
	p.Get("/kendaraan/:id", own, h.Peminjaman.LatestOf(models.CategoryKendaraan))
	p.Get("/:id", own, h.Peminjaman.GetByID)

	p.Post("/", own, h.Peminjaman.Create)
	p.Delete("/", own, h.Peminjaman.Delete)
}
