package controllers

import (
	"context"
	"strings"
	"time"

	"inventara/importer"
	"inventara/models"
	"inventara/repository"
	"inventara/utils"
	"inventara/validation"

	"github.com/gofiber/fiber/v2"
)

// GetAllKendaraan godoc
//
//	@Summary	Get all kendaraan
//	@Tags		Kendaraan
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		models.Kendaraan
//	@Failure	500	{object}	map[string]interface{}
//	@Router		/kendaraans [get]
func (ac *AsetController) GetAllKendaraan(c *fiber.Ctx) error {
	list, err := repository.GetAllKendaraan(c.UserContext())
	if err != nil {
		return fail(c, "Gagal mengambil data kendaraan", err)
	}
	return c.JSON(list)
}

// GetKendaraanByID godoc
//
//	@Summary	Get kendaraan by ID
//	@Tags		Kendaraan
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID kendaraan"
//	@Success	200	{object}	models.Kendaraan
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/kendaraans/{id} [get]
func (ac *AsetController) GetKendaraanByID(c *fiber.Ctx) error {
	k, err := repository.GetKendaraanByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, "Kendaraan tidak ditemukan", err)
	}
	return c.JSON(k)
}

func kendaraanFromInput(in models.KendaraanInput) (models.Kendaraan, error) {
	warranty, err := utils.ParseDate(in.Warranty)
	if err != nil {
		return models.Kendaraan{}, err
	}
	tax, err := utils.ParseDate(in.Tax)
	if err != nil {
		return models.Kendaraan{}, err
	}
	return models.Kendaraan{
		Name:      strings.TrimSpace(in.Name),
		Plat:      strings.ToUpper(strings.TrimSpace(in.Plat)),
		Status:    in.Status,
		Condition: in.Condition,
		Warranty:  warranty,
		Tax:       tax,
		Capacity:  in.Capacity,
		Category:  in.Category,
		Color:     in.Color,
		TempatID:  in.TempatID,
	}, nil
}

// CreateKendaraan godoc
//
//	@Summary		Create kendaraan
//	@Description	warranty dan tax memakai format DD-MM-YYYY
//	@Tags			Kendaraan
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Nama kendaraan"
//	@Param			plat		formData	string	true	"Plat nomor"
//	@Param			condition	formData	string	true	"Kondisi"
//	@Param			warranty	formData	string	true	"Garansi (DD-MM-YYYY)"
//	@Param			tax			formData	string	true	"Pajak (DD-MM-YYYY)"
//	@Param			capacity	formData	int		false	"Kapasitas"
//	@Param			category	formData	string	true	"mobil | motor | truk"
//	@Param			color		formData	string	true	"Warna"
//	@Param			tempat_id	formData	string	true	"ID parkiran"
//	@Param			photo		formData	file	false	"Foto"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		409			{object}	map[string]interface{}	"Plat sudah terdaftar"
//	@Router			/kendaraans [post]
func (ac *AsetController) CreateKendaraan(c *fiber.Ctx) error {
	var in models.KendaraanInput
	if done, err := bind(c, &in); done {
		return err
	}
	k, err := kendaraanFromInput(in)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "Tanggal tidak valid", "error": err.Error()})
	}
	ctx := c.UserContext()

	id, err := repository.GenerateID(ctx, "kendaraan")
	if err != nil {
		return fail(c, "Gagal generate ID kendaraan", err)
	}
	photo, err := ac.savePhoto(c, kindKendaraan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	k.ID = id
	k.Photo = photo
	k.CreatedAt = time.Now()
	if err := repository.CreateKendaraan(ctx, &k); err != nil {
		ac.dropPhoto(kindKendaraan, photo)
		return fail(c, "Gagal menambah kendaraan", err)
	}
	return created(c, "Kendaraan berhasil ditambah", k)
}

// UpdateKendaraan godoc
//
//	@Summary	Update kendaraan
//	@Tags		Kendaraan
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		plat	path		string	true	"Plat saat ini"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/kendaraans/{plat} [put]
func (ac *AsetController) UpdateKendaraan(c *fiber.Ctx) error {
	ctx := c.UserContext()
	old, err := repository.GetKendaraanByPlat(ctx, strings.ToUpper(param(c, "plat")))
	if err != nil {
		return fail(c, "Kendaraan tidak ditemukan", err)
	}

	var in models.KendaraanInput
	if done, err := bind(c, &in); done {
		return err
	}
	k, err := kendaraanFromInput(in)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "Tanggal tidak valid", "error": err.Error()})
	}
	photo, err := ac.savePhoto(c, kindKendaraan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	k.Photo = photo
	if err := repository.UpdateKendaraan(ctx, old.ID, k); err != nil {
		ac.dropPhoto(kindKendaraan, photo)
		return fail(c, "Gagal update kendaraan", err)
	}
	if photo != "" {
		ac.dropPhoto(kindKendaraan, old.Photo)
	}
	return c.JSON(fiber.Map{"message": "Kendaraan berhasil diupdate"})
}

// DeleteKendaraan godoc
//
//	@Summary	Delete kendaraan
//	@Tags		Kendaraan
//	@Security	BearerAuth
//	@Param		plat	path		string	true	"Plat nomor"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	409		{object}	map[string]interface{}	"Masih ada di pengajuan aktif"
//	@Router		/kendaraans/{plat} [delete]
func (ac *AsetController) DeleteKendaraan(c *fiber.Ctx) error {
	if err := ac.deleteKendaraan(c.UserContext(), strings.ToUpper(param(c, "plat"))); err != nil {
		return fail(c, "Gagal menghapus kendaraan", err)
	}
	return c.JSON(fiber.Map{"message": "Kendaraan berhasil dihapus"})
}

func (ac *AsetController) deleteKendaraan(ctx context.Context, plat string) error {
	k, err := repository.DeleteKendaraanByPlat(ctx, plat)
	if err != nil {
		return err
	}
	ac.dropPhoto(kindKendaraan, k.Photo)
	return nil
}

// BulkDeleteKendaraan godoc
//
//	@Summary	Bulk delete kendaraan
//	@Tags		Kendaraan
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body		models.BulkDeleteInput	true	"Daftar plat"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/kendaraans/bulk [delete]
func (ac *AsetController) BulkDeleteKendaraan(c *fiber.Ctx) error {
	return bulkDelete(c, ac.deleteKendaraan)
}

// ImportKendaraan godoc
//
//	@Summary		Import kendaraan dari xlsx
//	@Description	Kolom: nama_kendaraan, plat, status, condition, warranty, capacity, category, color, tax, tempat_name. Foto di kolom K.
//	@Tags			Kendaraan
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			file	formData	file	true	"File xlsx"
//	@Success		200		{object}	importer.Result
//	@Router			/kendaraans/import [post]
func (ac *AsetController) ImportKendaraan(c *fiber.Ctx) error {
	f, err := uploadedSheet(c)
	if err != nil {
		return importFailed(c, err)
	}
	defer f.Close()

	rows, res, err := importer.ParseKendaraans(f)
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
		in := models.KendaraanInput{
			Name:      row.Name,
			Plat:      row.Plat,
			Status:    row.Status,
			Condition: row.Condition,
			Warranty:  utils.FormatDate(row.Warranty),
			Tax:       utils.FormatDate(row.Tax),
			Capacity:  row.Capacity,
			Category:  row.Category,
			Color:     row.Color,
			TempatID:  tempatID,
		}
		if err := validation.Struct(in); err != nil {
			res.Skip(row.Row, "%v", err)
			continue
		}
		id, err := repository.GenerateID(ctx, "kendaraan")
		if err != nil {
			return fail(c, "Gagal generate ID kendaraan", err)
		}
		k := models.Kendaraan{
			ID:        id,
			Name:      row.Name,
			Plat:      strings.ToUpper(row.Plat),
			Status:    row.Status,
			Condition: row.Condition,
			Warranty:  row.Warranty,
			Tax:       row.Tax,
			Capacity:  row.Capacity,
			Category:  row.Category,
			Color:     row.Color,
			TempatID:  tempatID,
			Photo:     ac.savePicture(row.Photo, kindKendaraan),
			CreatedAt: time.Now(),
		}
		if err := repository.CreateKendaraan(ctx, &k); err != nil {
			ac.dropPhoto(kindKendaraan, k.Photo)
			res.Skip(row.Row, "%v", err)
			continue
		}
		res.Imported++
	}
	return c.JSON(res)
}
