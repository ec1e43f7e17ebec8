package controllers

import (
	"context"
	"strings"
	"time"

	"inventara/importer"
	"inventara/models"
	"inventara/repository"
	"inventara/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllRuangan godoc
//
//	@Summary	Get all ruangan
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		models.Ruangan
//	@Failure	500	{object}	map[string]interface{}
//	@Router		/ruangans [get]
func (ac *AsetController) GetAllRuangan(c *fiber.Ctx) error {
	list, err := repository.GetAllRuangan(c.UserContext())
	if err != nil {
		return fail(c, "Gagal mengambil data ruangan", err)
	}
	return c.JSON(list)
}

// GetRuanganByID godoc
//
//	@Summary	Get ruangan by ID
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID ruangan"
//	@Success	200	{object}	models.Ruangan
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/ruangans/{id} [get]
func (ac *AsetController) GetRuanganByID(c *fiber.Ctx) error {
	r, err := repository.GetRuanganByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, "Ruangan tidak ditemukan", err)
	}
	return c.JSON(r)
}

// GetBarangOfRuangan godoc
//
//	@Summary	Barang di dalam ruangan
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"ID ruangan"
//	@Success	200	{array}	models.Barang
//	@Router		/ruangans/{id}/barangs [get]
func (ac *AsetController) GetBarangOfRuangan(c *fiber.Ctx) error {
	ctx := c.UserContext()
	r, err := repository.GetRuanganByID(ctx, param(c, "id"))
	if err != nil {
		return fail(c, "Ruangan tidak ditemukan", err)
	}
	list, err := repository.GetBarangByRuangan(ctx, r.ID)
	if err != nil {
		return fail(c, "Gagal mengambil data barang", err)
	}
	return c.JSON(list)
}

// CreateRuangan godoc
//
//	@Summary	Create ruangan
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		code		formData	string	true	"Kode ruangan"
//	@Param		capacity	formData	int		false	"Kapasitas"
//	@Param		category	formData	string	true	"kelas | lab | gudang"
//	@Param		tempat_id	formData	string	true	"ID tempat"
//	@Param		photo		formData	file	false	"Foto"
//	@Success	201			{object}	map[string]interface{}
//	@Failure	404			{object}	map[string]interface{}	"Tempat tidak ditemukan"
//	@Failure	409			{object}	map[string]interface{}	"Kode sudah dipakai"
//	@Router		/ruangans [post]
func (ac *AsetController) CreateRuangan(c *fiber.Ctx) error {
	var in models.RuanganInput
	if done, err := bind(c, &in); done {
		return err
	}
	ctx := c.UserContext()

	id, err := repository.GenerateID(ctx, "ruangan")
	if err != nil {
		return fail(c, "Gagal generate ID ruangan", err)
	}
	photo, err := ac.savePhoto(c, kindRuangan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	r := ruanganFromInput(in)
	r.ID = id
	r.Photo = photo
	r.CreatedAt = time.Now()
	if err := repository.CreateRuangan(ctx, &r); err != nil {
		ac.dropPhoto(kindRuangan, photo)
		return fail(c, "Gagal menambah ruangan", err)
	}
	return created(c, "Ruangan berhasil ditambah", r)
}

func ruanganFromInput(in models.RuanganInput) models.Ruangan {
	return models.Ruangan{
		Code:     strings.TrimSpace(in.Code),
		Status:   in.Status,
		Capacity: in.Capacity,
		Category: in.Category,
		TempatID: in.TempatID,
	}
}

// UpdateRuangan godoc
//
//	@Summary	Update ruangan
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		code	path		string	true	"Kode ruangan saat ini"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/ruangans/{code} [put]
func (ac *AsetController) UpdateRuangan(c *fiber.Ctx) error {
	ctx := c.UserContext()
	old, err := repository.GetRuanganByCode(ctx, param(c, "code"))
	if err != nil {
		return fail(c, "Ruangan tidak ditemukan", err)
	}

	var in models.RuanganInput
	if done, err := bind(c, &in); done {
		return err
	}
	photo, err := ac.savePhoto(c, kindRuangan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	r := ruanganFromInput(in)
	r.Photo = photo
	if err := repository.UpdateRuangan(ctx, old.ID, r); err != nil {
		ac.dropPhoto(kindRuangan, photo)
		return fail(c, "Gagal update ruangan", err)
	}
	if photo != "" {
		ac.dropPhoto(kindRuangan, old.Photo)
	}
	return c.JSON(fiber.Map{"message": "Ruangan berhasil diupdate"})
}

// DeleteRuangan godoc
//
//	@Summary		Delete ruangan
//	@Description	Ditolak (409) bila masih ada barang atau pengajuan aktif.
//	@Tags			Ruangan
//	@Security		BearerAuth
//	@Param			code	path		string	true	"Kode ruangan"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		409		{object}	map[string]interface{}
//	@Router			/ruangans/{code} [delete]
func (ac *AsetController) DeleteRuangan(c *fiber.Ctx) error {
	if err := ac.deleteRuangan(c.UserContext(), param(c, "code")); err != nil {
		return fail(c, "Gagal menghapus ruangan", err)
	}
	return c.JSON(fiber.Map{"message": "Ruangan berhasil dihapus"})
}

func (ac *AsetController) deleteRuangan(ctx context.Context, code string) error {
	r, err := repository.DeleteRuanganByCode(ctx, code)
	if err != nil {
		return err
	}
	ac.dropPhoto(kindRuangan, r.Photo)
	return nil
}

// BulkDeleteRuangan godoc
//
//	@Summary	Bulk delete ruangan
//	@Tags		Ruangan
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body		models.BulkDeleteInput	true	"Daftar kode ruangan"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/ruangans/bulk [delete]
func (ac *AsetController) BulkDeleteRuangan(c *fiber.Ctx) error {
	return bulkDelete(c, ac.deleteRuangan)
}

// ImportRuangan godoc
//
//	@Summary		Import ruangan dari xlsx
//	@Description	Kolom: kode_ruangan, capacity, category, tempat_name. Foto di kolom E.
//	@Tags			Ruangan
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			file	formData	file	true	"File xlsx"
//	@Success		200		{object}	importer.Result
//	@Router			/ruangans/import [post]
func (ac *AsetController) ImportRuangan(c *fiber.Ctx) error {
	f, err := uploadedSheet(c)
	if err != nil {
		return importFailed(c, err)
	}
	defer f.Close()

	rows, res, err := importer.ParseRuangans(f)
	if err != nil {
		return importFailed(c, err)
	}

	ctx := c.UserContext()
	tempats := map[string]string{}
	for _, row := range rows {
		tempatID, err := lookupTempat(ctx, tempats, row.TempatName)
		if err != nil {
			res.Skip(row.Row, "tempat %q: %v", row.TempatName, err)
			continue
		}
		in := models.RuanganInput{Code: row.Code, Capacity: row.Capacity, Category: row.Category, TempatID: tempatID}
		if err := validation.Struct(in); err != nil {
			res.Skip(row.Row, "%v", err)
			continue
		}
		id, err := repository.GenerateID(ctx, "ruangan")
		if err != nil {
			return fail(c, "Gagal generate ID ruangan", err)
		}
		r := ruanganFromInput(in)
		r.ID = id
		r.Photo = ac.savePicture(row.Photo, kindRuangan)
		r.CreatedAt = time.Now()
		if err := repository.CreateRuangan(ctx, &r); err != nil {
			ac.dropPhoto(kindRuangan, r.Photo)
			res.Skip(row.Row, "%v", err)
			continue
		}
		res.Imported++
	}
	return c.JSON(res)
}

// lookupTempat mencari ID tempat dari nama dengan cache per request.
func lookupTempat(ctx context.Context, cache map[string]string, name string) (string, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	t, err := repository.GetTempatByName(ctx, name)
	if err != nil {
		return "", err
	}
	cache[name] = t.ID
	return t.ID, nil
}
