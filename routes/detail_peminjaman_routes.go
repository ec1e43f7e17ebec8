package routes

import (
	"inventara/middleware"
	"inventara/models"

	"github.com/gofiber/fiber/v2"
)

func DetailPeminjamanRoutes(app *fiber.App, h Handlers) {
	detail := app.Group("/detailPeminjaman", h.jwt())
	own := h.Authz.Require(middleware.ObjLoan, middleware.ActOwn)
	approve := h.Authz.Require(middleware.ObjLoan, middleware.ActApprove)

	detail.Get("/", own, h.Detail.GetAll)
	detail.Get("/checkItemsStatus", h.Authz.Require(middleware.ObjLoan, middleware.ActRun), h.Detail.CheckItemsStatus)

	// riwayat per resource dan jadwal (static path sebelum /:id)
	detail.Get("/all/barang/:id", own, h.Detail.HistoryOf(models.CategoryBarang))
	detail.Get("/all/ruangan/:id", own, h.Detail.HistoryOf(models.CategoryRuangan))
	detail.Get("/all/kendaraan/:id", own, h.Detail.HistoryOf(models.CategoryKendaraan))
	detail.Get("/all/draft/:id", own, h.Detail.GetSchedule)

	detail.Get("/:id", own, h.Detail.GetByID)
	detail.Get("/:id/peminjaman", own, h.Detail.GetLines)

	detail.Post("/draft", own, h.Detail.CreateDraft)
	detail.Post("/pending", own, h.Detail.CreatePending)
	detail.Patch("/pending", own, h.Detail.Submit)
	detail.Patch("/canceled", own, h.Detail.Cancel)
	detail.Patch("/returned", own, h.Detail.Return)

	// headOffice dan admin
	detail.Patch("/approved", approve, h.Detail.Approve)
	detail.Patch("/rejected", approve, h.Detail.Reject)
}
