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

// GetAllTempat godoc
//
//	@Summary		Get all tempat
//	@Description	Mengambil semua gedung dan parkiran
//	@Tags			Tempat
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		models.Tempat
//	@Failure		500	{object}	map[string]interface{}
//	@Router			/tempats [get]
func (ac *AsetController) GetAllTempat(c *fiber.Ctx) error {
	list, err := repository.GetAllTempat(c.UserContext())
	if err != nil {
		return fail(c, "Gagal mengambil data tempat", err)
	}
	return c.JSON(list)
}

// GetTempatByID godoc
//
//	@Summary	Get tempat by ID
//	@Tags		Tempat
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID tempat"
//	@Success	200	{object}	models.Tempat
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/tempats/{id} [get]
func (ac *AsetController) GetTempatByID(c *fiber.Ctx) error {
	t, err := repository.GetTempatByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, "Tempat tidak ditemukan", err)
	}
	return c.JSON(t)
}

// GetRuanganOfTempat godoc
//
//	@Summary	Ruangan di dalam tempat
//	@Tags		Tempat
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"ID tempat"
//	@Success	200	{array}	models.Ruangan
//	@Router		/tempats/{id}/ruangans [get]
func (ac *AsetController) GetRuanganOfTempat(c *fiber.Ctx) error {
	ctx := c.UserContext()
	t, err := repository.GetTempatByID(ctx, param(c, "id"))
	if err != nil {
		return fail(c, "Tempat tidak ditemukan", err)
	}
	list, err := repository.GetRuanganByTempat(ctx, t.ID)
	if err != nil {
		return fail(c, "Gagal mengambil data ruangan", err)
	}
	return c.JSON(list)
}

// GetKendaraanOfTempat godoc
//
//	@Summary	Kendaraan di parkiran
//	@Tags		Tempat
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"ID tempat"
//	@Success	200	{array}	models.Kendaraan
//	@Router		/tempats/{id}/kendaraans [get]
func (ac *AsetController) GetKendaraanOfTempat(c *fiber.Ctx) error {
	ctx := c.UserContext()
	t, err := repository.GetTempatByID(ctx, param(c, "id"))
	if err != nil {
		return fail(c, "Tempat tidak ditemukan", err)
	}
	list, err := repository.GetKendaraanByTempat(ctx, t.ID)
	if err != nil {
		return fail(c, "Gagal mengambil data kendaraan", err)
	}
	return c.JSON(list)
}

// CreateTempat godoc
//
//	@Summary		Create tempat
//	@Description	Menambah gedung atau parkiran (admin only), multipart dengan foto opsional
//	@Tags			Tempat
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Nama tempat"
//	@Param			category	formData	string	true	"gedung | parkiran"
//	@Param			photo		formData	file	false	"Foto"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		409			{object}	map[string]interface{}	"Nama sudah dipakai"
//	@Failure		422			{object}	map[string]interface{}
//	@Router			/tempats [post]
func (ac *AsetController) CreateTempat(c *fiber.Ctx) error {
	var in models.TempatInput
	if done, err := bind(c, &in); done {
		return err
	}
	ctx := c.UserContext()

	id, err := repository.GenerateID(ctx, "tempat")
	if err != nil {
		return fail(c, "Gagal generate ID tempat", err)
	}
	photo, err := ac.savePhoto(c, kindTempat)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	t := models.Tempat{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Photo:     photo,
		CreatedAt: time.Now(),
	}
	if err := repository.CreateTempat(ctx, &t); err != nil {
		ac.dropPhoto(kindTempat, photo)
		return fail(c, "Gagal menambah tempat", err)
	}
	return created(c, "Tempat berhasil ditambah", t)
}

// UpdateTempat godoc
//
//	@Summary	Update tempat
//	@Tags		Tempat
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		name		path		string	true	"Nama tempat saat ini"
//	@Param		name		formData	string	true	"Nama baru"
//	@Param		category	formData	string	true	"gedung | parkiran"
//	@Param		photo		formData	file	false	"Foto baru"
//	@Success	200			{object}	map[string]interface{}
//	@Router		/tempats/{name} [put]
func (ac *AsetController) UpdateTempat(c *fiber.Ctx) error {
	ctx := c.UserContext()
	old, err := repository.GetTempatByName(ctx, param(c, "name"))
	if err != nil {
		return fail(c, "Tempat tidak ditemukan", err)
	}

	var in models.TempatInput
	if done, err := bind(c, &in); done {
		return err
	}
	photo, err := ac.savePhoto(c, kindTempat)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	t := models.Tempat{Name: strings.TrimSpace(in.Name), Category: in.Category, Photo: photo}
	if err := repository.UpdateTempat(ctx, old.ID, t); err != nil {
		ac.dropPhoto(kindTempat, photo)
		return fail(c, "Gagal update tempat", err)
	}
	if photo != "" {
		ac.dropPhoto(kindTempat, old.Photo)
	}
	return c.JSON(fiber.Map{"message": "Tempat berhasil diupdate"})
}

// DeleteTempat godoc
//
//	@Summary		Delete tempat
//	@Description	Menghapus tempat berdasarkan nama. Ditolak (409) bila masih ada ruangan atau kendaraan.
//	@Tags			Tempat
//	@Security		BearerAuth
//	@Param			name	path		string	true	"Nama tempat"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		409		{object}	map[string]interface{}
//	@Router			/tempats/{name} [delete]
func (ac *AsetController) DeleteTempat(c *fiber.Ctx) error {
	if err := ac.deleteTempat(c.UserContext(), param(c, "name")); err != nil {
		return fail(c, "Gagal menghapus tempat", err)
	}
	return c.JSON(fiber.Map{"message": "Tempat berhasil dihapus"})
}

func (ac *AsetController) deleteTempat(ctx context.Context, name string) error {
	t, err := repository.DeleteTempatByName(ctx, name)
	if err != nil {
		return err
	}
	ac.dropPhoto(kindTempat, t.Photo)
	return nil
}

// BulkDeleteTempat godoc
//
//	@Summary	Bulk delete tempat
//	@Tags		Tempat
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.BulkDeleteInput	true	"Daftar nama tempat"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/tempats/bulk [delete]
func (ac *AsetController) BulkDeleteTempat(c *fiber.Ctx) error {
	return bulkDelete(c, ac.deleteTempat)
}

// ImportTempat godoc
//
//	@Summary		Import tempat dari xlsx
//	@Description	Kolom: nama_tempat, category. Foto di kolom C.
//	@Tags			Tempat
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File xlsx"
//	@Success		200		{object}	importer.Result
//	@Router			/tempats/import [post]
func (ac *AsetController) ImportTempat(c *fiber.Ctx) error {
	f, err := uploadedSheet(c)
	if err != nil {
		return importFailed(c, err)
	}
	defer f.Close()

	rows, res, err := importer.ParseTempats(f)
	if err != nil {
		return importFailed(c, err)
	}

	ctx := c.UserContext()
	for _, row := range rows {
		if err := validation.Struct(models.TempatInput{Name: row.Name, Category: row.Category}); err != nil {
			res.Skip(row.Row, "%v", err)
			continue
		}
		id, err := repository.GenerateID(ctx, "tempat")
		if err != nil {
			return fail(c, "Gagal generate ID tempat", err)
		}
		t := models.Tempat{
			ID:        id,
			Name:      row.Name,
			Category:  row.Category,
			Photo:     ac.savePicture(row.Photo, kindTempat),
			CreatedAt: time.Now(),
		}
		if err := repository.CreateTempat(ctx, &t); err != nil {
			ac.dropPhoto(kindTempat, t.Photo)
			res.Skip(row.Row, "%v", err)
			continue
		}
		res.Imported++
	}
	return c.JSON(res)
}
