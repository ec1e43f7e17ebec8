package controllers

import (
	"context"
	"io"
	"path/filepath"

	"inventara/importer"
	"inventara/logging"
	"inventara/models"
	"inventara/utils"

	"github.com/gofiber/fiber/v2"
)

// Subfolder foto per jenis aset di bawah UploadDir.
const (
	kindTempat    = "tempat"
	kindRuangan   = "ruangan"
	kindBarang    = "barang"
	kindKendaraan = "kendaraan"
	kindUser      = "user"
)

var photoKinds = map[string]bool{
	kindTempat:    true,
	kindRuangan:   true,
	kindBarang:    true,
	kindKendaraan: true,
	kindUser:      true,
}

// AsetController menangani CRUD master data: tempat, ruangan, barang dan
// kendaraan. Foto disimpan di UploadDir/<jenis>.
type AsetController struct {
	UploadDir string
}

func NewAsetController(uploadDir string) *AsetController {
	return &AsetController{UploadDir: uploadDir}
}

func (ac *AsetController) dir(kind string) string {
	return filepath.Join(ac.UploadDir, kind)
}

// savePhoto menyimpan field "photo" bila ada. Request tanpa file bukan error.
func (ac *AsetController) savePhoto(c *fiber.Ctx, kind string) (string, error) {
	fh, err := c.FormFile("photo")
	if err != nil || fh == nil {
		return "", nil
	}
	return utils.SavePhoto(fh, ac.dir(kind))
}

func (ac *AsetController) savePicture(p *importer.Picture, kind string) string {
	if p == nil {
		return ""
	}
	name, err := utils.SavePhotoBytes(p.Data, p.Ext, ac.dir(kind))
	if err != nil {
		logging.Warn().Err(err).Str("kind", kind).Msg("gagal menyimpan gambar dari spreadsheet")
		return ""
	}
	return name
}

func (ac *AsetController) dropPhoto(kind, name string) {
	if err := utils.RemovePhoto(ac.dir(kind), name); err != nil {
		logging.Warn().Err(err).Str("kind", kind).Str("photo", name).Msg("gagal menghapus foto")
	}
}

// ServePhoto godoc
//
//	@Summary	Get photo file
//	@Tags		Photo
//	@Produce	octet-stream
//	@Param		kind	path	string	true	"tempat | ruangan | barang | kendaraan | user"
//	@Param		name	path	string	true	"Nama file"
//	@Success	200
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/photo/{kind}/{name} [get]
func (ac *AsetController) ServePhoto(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !photoKinds[kind] {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Foto tidak ditemukan"})
	}
	name := filepath.Base(c.Params("name"))
	if err := c.SendFile(filepath.Join(ac.dir(kind), name)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Foto tidak ditemukan",
			"error":   err.Error(),
		})
	}
	return nil
}

type bulkFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// bulkDelete menjalankan del untuk setiap key; kegagalan satu key tidak
// menghentikan key lain.
func bulkDelete(c *fiber.Ctx, del func(ctx context.Context, key string) error) error {
	var in models.BulkDeleteInput
	if done, err := bind(c, &in); done {
		return err
	}

	deleted := make([]string, 0, len(in.Keys))
	failed := make([]bulkFailure, 0)
	for _, key := range in.Keys {
		if err := del(c.UserContext(), key); err != nil {
			failed = append(failed, bulkFailure{Key: key, Error: err.Error()})
			continue
		}
		deleted = append(deleted, key)
	}

	status := fiber.StatusOK
	if len(deleted) == 0 {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Bulk delete selesai",
		"deleted": deleted,
		"failed":  failed,
	})
}

// uploadedSheet membuka field "file" dari multipart form.
func uploadedSheet(c *fiber.Ctx) (io.ReadCloser, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	return fh.Open()
}

func importFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "File import tidak valid",
		"error":   err.Error(),
	})
}
