package controllers

import (
	"inventara/models"
	"inventara/services"

	"github.com/gofiber/fiber/v2"
)

// PeminjamanController menangani item (baris resource) di dalam pengajuan.
type PeminjamanController struct {
	Loans *services.LoanService
}

func NewPeminjamanController(loans *services.LoanService) *PeminjamanController {
	return &PeminjamanController{Loans: loans}
}

// GetOwn godoc
//
//	@Summary	Item peminjaman milik user
//	@Tags		Peminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Peminjaman
//	@Router		/peminjaman [get]
func (pc *PeminjamanController) GetOwn(c *fiber.Ctx) error {
	lines, err := pc.Loans.OwnLines(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal mengambil data peminjaman", err)
	}
	return c.JSON(lines)
}

// GetDraft godoc
//
//	@Summary	Item di draft user
//	@Tags		Peminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	models.Peminjaman
//	@Router		/peminjaman/draft [get]
func (pc *PeminjamanController) GetDraft(c *fiber.Ctx) error {
	lines, err := pc.Loans.DraftLines(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal mengambil draft", err)
	}
	return c.JSON(lines)
}

// GetByID godoc
//
//	@Summary	Get item peminjaman
//	@Tags		Peminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID item"
//	@Success	200	{object}	models.Peminjaman
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/peminjaman/{id} [get]
func (pc *PeminjamanController) GetByID(c *fiber.Ctx) error {
	line, err := pc.Loans.OwnLine(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, "Peminjaman tidak ditemukan", err)
	}
	return c.JSON(line)
}

// LatestOf mengembalikan handler item terbaru untuk satu resource.
//
//	@Summary	Item peminjaman terbaru per resource
//	@Tags		Peminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID resource"
//	@Success	200	{object}	models.Peminjaman
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/peminjaman/barang/{id} [get]
//	@Router		/peminjaman/ruangan/{id} [get]
//	@Router		/peminjaman/kendaraan/{id} [get]
func (pc *PeminjamanController) LatestOf(cat models.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := models.ResourceRef{Category: cat, ID: c.Params("id")}
		line, err := pc.Loans.LatestLineByResource(c.UserContext(), ref)
		if err != nil {
			return fail(c, "Peminjaman tidak ditemukan", err)
		}
		return c.JSON(line)
	}
}

// Create godoc
//
//	@Summary		Tambah item ke pengajuan
//	@Description	Pengajuan harus milik user dan masih draft atau pending. Resource yang sama tidak boleh dua kali.
//	@Tags			Peminjaman
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.PeminjamanInput	true	"Item"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]interface{}
//	@Failure		409		{object}	map[string]interface{}	"Resource sudah ada di pengajuan"
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/peminjaman [post]
func (pc *PeminjamanController) Create(c *fiber.Ctx) error {
	var in models.PeminjamanInput
	if done, err := bind(c, &in); done {
		return err
	}
	line, err := pc.Loans.AddLine(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return fail(c, "Gagal menambah item peminjaman", err)
	}
	return created(c, "Item berhasil ditambah", line)
}

// Delete godoc
//
//	@Summary	Hapus item dari pengajuan
//	@Tags		Peminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.IDInput	true	"ID item"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/peminjaman [delete]
func (pc *PeminjamanController) Delete(c *fiber.Ctx) error {
	var in models.IDInput
	if done, err := bind(c, &in); done {
		return err
	}
	if err := pc.Loans.RemoveLine(c.UserContext(), actorFrom(c), in.ID); err != nil {
		return fail(c, "Gagal menghapus item peminjaman", err)
	}
	return c.JSON(fiber.Map{"message": "Item berhasil dihapus"})
}
