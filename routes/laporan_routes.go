package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func LaporanRoutes(app *fiber.App, h Handlers) {
	// dibuka lewat window.open, token boleh dikirim sebagai ?token=
	app.Get(
		"/laporan/export/excel",
		middleware.JWTMiddlewareForExport(h.JWTSecret),
		h.Authz.Require(middleware.ObjLaporan, middleware.ActExport),
		h.Laporan.ExportExcel,
	)
}
