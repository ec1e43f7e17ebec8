package controllers

import (
	"context"

	"inventara/models"
	"inventara/services"

	"github.com/gofiber/fiber/v2"
)

// Reconciler menjalankan checkItemsStatus satu kali.
type Reconciler interface {
	RunOnce(ctx context.Context) (services.ReconcileReport, error)
}

// DetailPeminjamanController menangani pengajuan peminjaman (header).
type DetailPeminjamanController struct {
	Loans      *services.LoanService
	Reconciler Reconciler
}

func NewDetailPeminjamanController(loans *services.LoanService, rec Reconciler) *DetailPeminjamanController {
	return &DetailPeminjamanController{Loans: loans, Reconciler: rec}
}

// GetAll godoc
//
//	@Summary		List pengajuan
//	@Description	Admin dan headOffice melihat semua pengajuan non-draft, user hanya miliknya
//	@Tags			DetailPeminjaman
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		models.DetailPeminjaman
//	@Failure		500	{object}	map[string]interface{}
//	@Router			/detailPeminjaman [get]
func (dc *DetailPeminjamanController) GetAll(c *fiber.Ctx) error {
	list, err := dc.Loans.ListRequests(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal mengambil data pengajuan", err)
	}
	return c.JSON(list)
}

// GetByID godoc
//
//	@Summary	Get pengajuan by ID
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID pengajuan"
//	@Success	200	{object}	models.DetailPeminjaman
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/detailPeminjaman/{id} [get]
func (dc *DetailPeminjamanController) GetByID(c *fiber.Ctx) error {
	d, err := dc.Loans.GetRequest(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, "Pengajuan tidak ditemukan", err)
	}
	return c.JSON(d)
}

// GetLines godoc
//
//	@Summary	Item di dalam pengajuan
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"ID pengajuan"
//	@Success	200	{array}		models.Peminjaman
//	@Failure	404	{object}	map[string]interface{}
//	@Router		/detailPeminjaman/{id}/peminjaman [get]
func (dc *DetailPeminjamanController) GetLines(c *fiber.Ctx) error {
	lines, err := dc.Loans.LinesOfRequest(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, "Gagal mengambil item pengajuan", err)
	}
	return c.JSON(lines)
}

// GetSchedule godoc
//
//	@Summary		Jadwal resource di dalam pengajuan
//	@Description	Semua pengajuan lain yang memakai resource yang sama, urut tanggal pinjam
//	@Tags			DetailPeminjaman
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"ID pengajuan"
//	@Success		200	{array}		models.DetailPeminjaman
//	@Router			/detailPeminjaman/all/draft/{id} [get]
func (dc *DetailPeminjamanController) GetSchedule(c *fiber.Ctx) error {
	list, err := dc.Loans.ScheduleForRequest(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return fail(c, "Gagal mengambil jadwal", err)
	}
	return c.JSON(list)
}

// HistoryOf mengembalikan handler riwayat pengajuan untuk satu kategori resource.
//
//	@Summary	Riwayat pengajuan per resource
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"ID resource"
//	@Success	200	{array}	models.DetailPeminjaman
//	@Router		/detailPeminjaman/all/barang/{id} [get]
//	@Router		/detailPeminjaman/all/ruangan/{id} [get]
//	@Router		/detailPeminjaman/all/kendaraan/{id} [get]
func (dc *DetailPeminjamanController) HistoryOf(cat models.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := models.ResourceRef{Category: cat, ID: c.Params("id")}
		list, err := dc.Loans.HistoryByResource(c.UserContext(), ref)
		if err != nil {
			return fail(c, "Gagal mengambil riwayat peminjaman", err)
		}
		return c.JSON(list)
	}
}

// CheckItemsStatus godoc
//
//	@Summary		Jalankan rekonsiliasi status
//	@Description	Aktivasi peminjaman yang sudah mulai, notifikasi jatuh tempo, dan pembatalan otomatis pending lebih dari 2 hari
//	@Tags			DetailPeminjaman
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	services.ReconcileReport
//	@Failure		500	{object}	map[string]interface{}
//	@Router			/detailPeminjaman/checkItemsStatus [get]
func (dc *DetailPeminjamanController) CheckItemsStatus(c *fiber.Ctx) error {
	report, err := dc.Reconciler.RunOnce(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Rekonsiliasi selesai dengan error",
			"error":   err.Error(),
			"data":    report,
		})
	}
	return ok(c, "Rekonsiliasi selesai", report)
}

// CreateDraft godoc
//
//	@Summary		Ambil atau buat draft
//	@Description	Satu user hanya punya satu draft
//	@Tags			DetailPeminjaman
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/detailPeminjaman/draft [post]
func (dc *DetailPeminjamanController) CreateDraft(c *fiber.Ctx) error {
	d, err := dc.Loans.GetOrCreateDraft(c.UserContext(), actorFrom(c))
	if err != nil {
		return fail(c, "Gagal membuat draft", err)
	}
	return ok(c, "Draft siap", d)
}

// CreatePending godoc
//
//	@Summary	Buat pengajuan langsung pending
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.SubmitInput	true	"Data peminjaman"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	422		{object}	map[string]interface{}
//	@Router		/detailPeminjaman/pending [post]
func (dc *DetailPeminjamanController) CreatePending(c *fiber.Ctx) error {
	var in models.SubmitInput
	if done, err := bind(c, &in); done {
		return err
	}
	d, err := dc.Loans.CreatePending(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return fail(c, "Gagal membuat pengajuan", err)
	}
	return created(c, "Pengajuan berhasil dibuat", d)
}

// Submit godoc
//
//	@Summary		Ajukan atau ubah pengajuan
//	@Description	draft menjadi pending, atau ubah data pengajuan yang masih pending
//	@Tags			DetailPeminjaman
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.SubmitInput	true	"Data peminjaman"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]interface{}
//	@Failure		409		{object}	map[string]interface{}
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/detailPeminjaman/pending [patch]
func (dc *DetailPeminjamanController) Submit(c *fiber.Ctx) error {
	var in models.SubmitInput
	if done, err := bind(c, &in); done {
		return err
	}
	if in.ID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "id wajib diisi"})
	}
	d, err := dc.Loans.Submit(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return fail(c, "Gagal mengajukan peminjaman", err)
	}
	return ok(c, "Pengajuan berhasil dikirim", d)
}

// Approve godoc
//
//	@Summary	Setujui pengajuan
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.IDInput	true	"ID pengajuan"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	409		{object}	map[string]interface{}	"Bentrok jadwal atau status tidak valid"
//	@Router		/detailPeminjaman/approved [patch]
func (dc *DetailPeminjamanController) Approve(c *fiber.Ctx) error {
	var in models.IDInput
	if done, err := bind(c, &in); done {
		return err
	}
	d, err := dc.Loans.Approve(c.UserContext(), actorFrom(c), in.ID)
	if err != nil {
		return fail(c, "Gagal menyetujui pengajuan", err)
	}
	return ok(c, "Pengajuan disetujui", d)
}

// Reject godoc
//
//	@Summary	Tolak pengajuan
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.ReasonInput	true	"ID dan alasan"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/detailPeminjaman/rejected [patch]
func (dc *DetailPeminjamanController) Reject(c *fiber.Ctx) error {
	var in models.ReasonInput
	if done, err := bind(c, &in); done {
		return err
	}
	d, err := dc.Loans.Reject(c.UserContext(), actorFrom(c), in.ID, in.Reason)
	if err != nil {
		return fail(c, "Gagal menolak pengajuan", err)
	}
	return ok(c, "Pengajuan ditolak", d)
}

// Cancel godoc
//
//	@Summary	Batalkan pengajuan
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.ReasonInput	true	"ID dan alasan"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/detailPeminjaman/canceled [patch]
func (dc *DetailPeminjamanController) Cancel(c *fiber.Ctx) error {
	var in models.ReasonInput
	if done, err := bind(c, &in); done {
		return err
	}
	d, err := dc.Loans.Cancel(c.UserContext(), actorFrom(c), in.ID, in.Reason)
	if err != nil {
		return fail(c, "Gagal membatalkan pengajuan", err)
	}
	return ok(c, "Pengajuan dibatalkan", d)
}

// Return godoc
//
//	@Summary	Kembalikan peminjaman
//	@Tags		DetailPeminjaman
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		models.IDInput	true	"ID pengajuan"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/detailPeminjaman/returned [patch]
func (dc *DetailPeminjamanController) Return(c *fiber.Ctx) error {
	var in models.IDInput
	if done, err := bind(c, &in); done {
		return err
	}
	d, err := dc.Loans.Return(c.UserContext(), actorFrom(c), in.ID)
	if err != nil {
		return fail(c, "Gagal mengembalikan peminjaman", err)
	}
	return ok(c, "Peminjaman dikembalikan", d)
}
