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

// GetAllBarang godoc
//
//	@Summary	Get all barang
//	@Tags		Barang
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		models.Barang
//	@Failure	500	{object}	map[string]interface{}
//	@Router		/barangs [get]
func (ac *AsetController) GetAllBarang(c *fiber.Ctx) error {
	list, err := repository.GetAllBarang(c.UserContext())
	if err != nil {
		return fail(c, "Gagal mengambil data barang", err)
	}
	return c.JSON(list)
}

// GetBarangByID godoc
//
//	@Summary	Get barang by ID
//	@Tags		Barang
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID barang"
//	@Success	200	{object}	models.Barang
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/barangs/{id} [get]
func (ac *AsetController) GetBarangByID(c *fiber.Ctx) error {
	b, err := repository.GetBarangByID(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, "Barang tidak ditemukan", err)
	}
	return c.JSON(b)
}

func barangFromInput(in models.BarangInput) (models.Barang, error) {
	warranty, err := utils.ParseDate(in.Warranty)
	if err != nil {
		return models.Barang{}, err
	}
	return models.Barang{
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.TrimSpace(in.Code),
		Status:    in.Status,
		Condition: in.Condition,
		Warranty:  warranty,
		RuanganID: in.RuanganID,
	}, nil
}

// CreateBarang godoc
//
//	@Summary		Create barang
//	@Description	warranty memakai format DD-MM-YYYY
//	@Tags			Barang
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Nama barang"
//	@Param			code		formData	string	true	"Kode barang"
//	@Param			condition	formData	string	true	"Kondisi"
//	@Param			warranty	formData	string	true	"Garansi (DD-MM-YYYY)"
//	@Param			ruangan_id	formData	string	true	"ID ruangan"
//	@Param			photo		formData	file	false	"Foto"
//	@Success		201			{object}	map[string]interface{}
//	@Failure		422			{object}	map[string]interface{}
//	@Router			/barangs [post]
func (ac *AsetController) CreateBarang(c *fiber.Ctx) error {
	var in models.BarangInput
	if done, err := bind(c, &in); done {
		return err
	}
	b, err := barangFromInput(in)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "warranty tidak valid", "error": err.Error()})
	}
	ctx := c.UserContext()

	id, err := repository.GenerateID(ctx, "barang")
	if err != nil {
		return fail(c, "Gagal generate ID barang", err)
	}
	photo, err := ac.savePhoto(c, kindBarang)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	b.ID = id
	b.Photo = photo
	b.CreatedAt = time.Now()
	if err := repository.CreateBarang(ctx, &b); err != nil {
		ac.dropPhoto(kindBarang, photo)
		return fail(c, "Gagal menambah barang", err)
	}
	return created(c, "Barang berhasil ditambah", b)
}

// UpdateBarang godoc
//
//	@Summary	Update barang
//	@Tags		Barang
//	@Security	BearerAuth
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id	path		string	true	"ID barang"
//	@Success	200	{object}	map[string]interface{}
//	@Router		/barangs/{id} [put]
func (ac *AsetController) UpdateBarang(c *fiber.Ctx) error {
	ctx := c.UserContext()
	old, err := repository.GetBarangByID(ctx, param(c, "id"))
	if err != nil {
		return fail(c, "Barang tidak ditemukan", err)
	}

	var in models.BarangInput
	if done, err := bind(c, &in); done {
		return err
	}
	b, err := barangFromInput(in)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "warranty tidak valid", "error": err.Error()})
	}
	photo, err := ac.savePhoto(c, kindBarang)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Foto tidak valid", "error": err.Error()})
	}

	b.Photo = photo
	if err := repository.UpdateBarang(ctx, old.ID, b); err != nil {
		ac.dropPhoto(kindBarang, photo)
		return fail(c, "Gagal update barang", err)
	}
	if photo != "" {
		ac.dropPhoto(kindBarang, old.Photo)
	}
	return c.JSON(fiber.Map{"message": "Barang berhasil diupdate"})
}

// DeleteBarang godoc
//
//	@Summary	Delete barang
//	@Tags		Barang
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID barang"
//	@Success	200	{object}	map[string]interface{}
//	@Failure	409	{object}	map[string]interface{}	"Masih ada di pengajuan aktif"
//	@Router		/barangs/{id} [delete]
func (ac *AsetController) DeleteBarang(c *fiber.Ctx) error {
	if err := ac.deleteBarang(c.UserContext(), param(c, "id")); err != nil {
		return fail(c, "Gagal menghapus barang", err)
	}
	return c.JSON(fiber.Map{"message": "Barang berhasil dihapus"})
}

func (ac *AsetController) deleteBarang(ctx context.Context, id string) error {
	b, err := repository.DeleteBarangByID(ctx, id)
	if err != nil {
		return err
	}
	ac.dropPhoto(kindBarang, b.Photo)
	return nil
}

// BulkDeleteBarang godoc
//
//	@Summary	Bulk delete barang
//	@Tags		Barang
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body		models.BulkDeleteInput	true	"Daftar ID barang"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/barangs/bulk [delete]
func (ac *AsetController) BulkDeleteBarang(c *fiber.Ctx) error {
	return bulkDelete(c, ac.deleteBarang)
}

// ImportBarang godoc
//
//	@Summary		Import barang dari xlsx
//	@Description	Kolom: nama_barang, code, condition, warranty, ruangan_code. Foto di kolom F.
//	@Tags			Barang
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Param			file	formData	file	true	"File xlsx"
//	@Success		200		{object}	importer.Result
//	@Router			/barangs/import [post]
func (ac *AsetController) ImportBarang(c *fiber.Ctx) error {
	f, err := uploadedSheet(c)
	if err != nil {
		return importFailed(c, err)
	}
	defer f.Close()

	rows, res, err := importer.ParseBarangs(f)
	if err != nil {
		return importFailed(c, err)
	}

	ctx := c.UserContext()
	ruangans := map[string]string{}
	for _, row := range rows {
		ruanganID, ok := ruangans[row.RuanganCode]
		if !ok {
			r, err := repository.GetRuanganByCode(ctx, row.RuanganCode)
			if err != nil {
				res.Skip(row.Row, "ruangan %q: %v", row.RuanganCode, err)
				continue
			}
			ruanganID = r.ID
			ruangans[row.RuanganCode] = ruanganID
		}
		in := models.BarangInput{
			Name:      row.Name,
			Code:      row.Code,
			Condition: row.Condition,
			Warranty:  utils.FormatDate(row.Warranty),
			RuanganID: ruanganID,
		}
		if err := validation.Struct(in); err != nil {
			res.Skip(row.Row, "%v", err)
			continue
		}
		id, err := repository.GenerateID(ctx, "barang")
		if err != nil {
			return fail(c, "Gagal generate ID barang", err)
		}
		b := models.Barang{
			ID:        id,
			Name:      row.Name,
			Code:      row.Code,
			Condition: row.Condition,
			Warranty:  row.Warranty,
			RuanganID: ruanganID,
			Photo:     ac.savePicture(row.Photo, kindBarang),
			CreatedAt: time.Now(),
		}
		if err := repository.CreateBarang(ctx, &b); err != nil {
			ac.dropPhoto(kindBarang, b.Photo)
			res.Skip(row.Row, "%v", err)
			continue
		}
		res.Imported++
	}
	return c.JSON(res)
}
