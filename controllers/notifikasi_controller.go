package controllers

import (
	"inventara/models"
	"inventara/services"

	"github.com/gofiber/fiber/v2"
)

type NotifikasiController struct {
	Notifs *services.NotificationService
}

func NewNotifikasiController(notifs *services.NotificationService) *NotifikasiController {
	return &NotifikasiController{Notifs: notifs}
}

// GetOwn godoc
//
//	@Summary	Notifikasi milik user
//	@Tags		Notifikasi
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Notifikasi
//	@Router		/notifikasi [get]
func (nc *NotifikasiController) GetOwn(c *fiber.Ctx) error {
	list, err := nc.Notifs.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal mengambil notifikasi", err)
	}
	return c.JSON(list)
}

// MarkRead godoc
//
//	@Summary	Tandai notifikasi sudah dibaca
//	@Tags		Notifikasi
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID notifikasi"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/notifikasi/{id}/read [patch]
func (nc *NotifikasiController) MarkRead(c *fiber.Ctx) error {
	if err := nc.Notifs.MarkRead(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return fail(c, "Notifikasi tidak ditemukan", err)
	}
	return c.JSON(fiber.Map{"message": "Notifikasi ditandai sudah dibaca"})
}

// MarkAllRead godoc
//
//	@Summary	Tandai semua notifikasi sudah dibaca
//	@Tags		Notifikasi
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]interface{}
//	@Router		/notifikasi/read-all [patch]
func (nc *NotifikasiController) MarkAllRead(c *fiber.Ctx) error {
	n, err := nc.Notifs.MarkAllRead(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal memperbarui notifikasi", err)
	}
	return c.JSON(fiber.Map{"message": "Semua notifikasi ditandai sudah dibaca", "updated": n})
}

// Send godoc
//
//	@Summary		Kirim notifikasi (admin)
//	@Description	Dipakai untuk uji coba push ke device user
//	@Tags			Notifikasi
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.SendNotifikasiInput	true	"Penerima dan kategori"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/notifikasi/send [post]
func (nc *NotifikasiController) Send(c *fiber.Ctx) error {
	var in models.SendNotifikasiInput
	if done, err := bind(c, &in); done {
		return err
	}
	if err := nc.Notifs.NotifyUser(c.UserContext(), in.UserID, in.Category, ""); err != nil {
		return fail(c, "Gagal mengirim notifikasi", err)
	}
	return c.JSON(fiber.Map{"message": "Notifikasi terkirim"})
}

// RegisterDevice godoc
//
//	@Summary		Daftarkan device token
//	@Description	Token yang sudah terdaftar dipindah ke user yang sedang login
//	@Tags			Perangkat
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.PerangkatInput	true	"Device token"
//	@Success		200		{object}	map[string]interface{}
//	@Router			/perangkat [post]
func (nc *NotifikasiController) RegisterDevice(c *fiber.Ctx) error {
	var in models.PerangkatInput
	if done, err := bind(c, &in); done {
		return err
	}
	p, err := nc.Notifs.RegisterDevice(c.UserContext(), actorFrom(c), in.DeviceToken)
	if err != nil {
		return fail(c, "Gagal mendaftarkan perangkat", err)
	}
	return ok(c, "Perangkat terdaftar", p)
}

// RemoveDevice godoc
//
//	@Summary	Hapus device token (logout)
//	@Tags		Perangkat
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body		models.PerangkatInput	true	"Device token"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	404		{object}	map[string]interface{}
//	@Router		/perangkat [delete]
func (nc *NotifikasiController) RemoveDevice(c *fiber.Ctx) error {
	var in models.PerangkatInput
	if done, err := bind(c, &in); done {
		return err
	}
	if err := nc.Notifs.RemoveDevice(c.UserContext(), actorFrom(c), in.DeviceToken); err != nil {
		return fail(c, "Perangkat tidak ditemukan", err)
	}
	return c.JSON(fiber.Map{"message": "Perangkat dihapus"})
}
