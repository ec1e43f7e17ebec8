package routes

import (
	"inventara/controllers"
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers mengumpulkan controller dan middleware yang dibutuhkan route.
type Handlers struct {
	JWTSecret    string
	Authz        *middleware.Authorizer
	LoginLimiter fiber.Handler

	Users      *controllers.UserController
	Aset       *controllers.AsetController
	Detail     *controllers.DetailPeminjamanController
	Peminjaman *controllers.PeminjamanController
	Notifikasi *controllers.NotifikasiController
	Laporan    *controllers.LaporanController
}

func (h Handlers) jwt() fiber.Handler {
	return middleware.JWTMiddleware(h.JWTSecret)
}

func SetupRoutes(app *fiber.App, h Handlers) {
	UserRoutes(app, h)
	RiwayatRoutes(app, h)
	TempatRoutes(app, h)
	RuanganRoutes(app, h)
	BarangRoutes(app, h)
	KendaraanRoutes(app, h)
	DetailPeminjamanRoutes(app, h)
	PeminjamanRoutes(app, h)
	NotifikasiRoutes(app, h)
	LaporanRoutes(app, h)
	PhotoRoutes(app, h)
}
