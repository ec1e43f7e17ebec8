package repository

import (
	"context"
	"fmt"

	"inventara/config"
	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func detailCol() *mongo.Collection {
	return config.DetailPeminjamanCollection
}

func peminjamanCol() *mongo.Collection {
	return config.PeminjamanCollection
}

// LoanStore adalah implementasi MongoDB untuk services.LoanStore.
type LoanStore struct {
	// Transactions mengaktifkan session transaction (butuh replica set).
	Transactions bool
}

var _ services.LoanStore = (*LoanStore)(nil)

func NewLoanStore(transactions bool) *LoanStore {
	return &LoanStore{Transactions: transactions}
}

func (s *LoanStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.Transactions || config.Client == nil {
		return fn(ctx)
	}
	// sudah di dalam transaksi
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := config.Client.StartSession()
	if err != nil {
		return fmt.Errorf("mulai session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *LoanStore) NextID(ctx context.Context, name string) (string, error) {
	return GenerateID(ctx, name)
}

// ---------- detail peminjaman ----------

// DetailQuery menerjemahkan filter service ke query MongoDB.
func DetailQuery(f services.DetailFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if len(f.IDs) > 0 {
		q["_id"] = bson.M{"$in": f.IDs}
	}
	if len(f.Statuses) > 0 {
		q["status"] = bson.M{"$in": f.Statuses}
	}
	if f.BorrowedUntil != nil {
		q["borrowed_date"] = bson.M{"$lte": *f.BorrowedUntil}
	}
	if f.EstimatedUntil != nil {
		q["estimated_time"] = bson.M{"$lte": *f.EstimatedUntil}
	}
	if f.SubmittedBefore != nil {
		q["submitted_at"] = bson.M{"$lt": *f.SubmittedBefore}
	}
	if f.OverdueNotified != nil {
		if *f.OverdueNotified {
			q["overdue_notified"] = true
		} else {
			q["overdue_notified"] = bson.M{"$ne": true}
		}
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			created["$lt"] = *f.CreatedTo
		}
		q["created_at"] = created
	}
	return q
}

func (s *LoanStore) GetDetail(ctx context.Context, id string) (*models.DetailPeminjaman, error) {
	return findOne[models.DetailPeminjaman](ctx, detailCol(), bson.M{"_id": id})
}

func (s *LoanStore) FindDetails(ctx context.Context, f services.DetailFilter) ([]models.DetailPeminjaman, error) {
	return findMany[models.DetailPeminjaman](ctx, detailCol(), DetailQuery(f), newestFirst)
}

func (s *LoanStore) InsertDetail(ctx context.Context, d *models.DetailPeminjaman) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := detailCol().InsertOne(ctx, d)
	return translateErr(err)
}

func (s *LoanStore) SaveDetail(ctx context.Context, d *models.DetailPeminjaman, expected models.LoanStatus) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := detailCol().ReplaceOne(ctx, saveFilter(d.ID, expected), d)
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := detailCol().CountDocuments(ctx, bson.M{"_id": d.ID})
	if err != nil {
		return translateErr(err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return fmt.Errorf("%w: status pengajuan %s sudah berubah", services.ErrConflict, d.ID)
}

// saveFilter hanya cocok bila status tersimpan masih sama dengan yang dibaca.
func saveFilter(id string, expected models.LoanStatus) bson.M {
	return bson.M{"_id": id, "status": expected}
}

// ---------- peminjaman (item) ----------

var resourceField = map[models.Category]string{
	models.CategoryBarang:    "barang_id",
	models.CategoryKendaraan: "kendaraan_id",
	models.CategoryRuangan:   "ruangan_id",
}

func LineQuery(f services.LineFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["user_id"] = f.UserID
	}
	if len(f.DetailIDs) > 0 {
		q["detail_peminjaman_id"] = bson.M{"$in": f.DetailIDs}
	}
	if f.Resource != nil {
		q["category"] = f.Resource.Category
		q[resourceField[f.Resource.Category]] = f.Resource.ID
	}
	return q
}

func (s *LoanStore) GetLine(ctx context.Context, id string) (*models.Peminjaman, error) {
	return findOne[models.Peminjaman](ctx, peminjamanCol(), bson.M{"_id": id})
}

func (s *LoanStore) FindLines(ctx context.Context, f services.LineFilter) ([]models.Peminjaman, error) {
	return findMany[models.Peminjaman](ctx, peminjamanCol(), LineQuery(f), newestFirst)
}

func (s *LoanStore) InsertLine(ctx context.Context, p *models.Peminjaman) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := peminjamanCol().InsertOne(ctx, p)
	return translateErr(err)
}

func (s *LoanStore) DeleteLine(ctx context.Context, id string) error {
	return deleteByID(ctx, peminjamanCol(), id)
}

// ---------- resource ----------

func resourceCol(cat models.Category) (*mongo.Collection, error) {
	switch cat {
	case models.CategoryBarang:
		return barangCol(), nil
	case models.CategoryKendaraan:
		return kendaraanCol(), nil
	case models.CategoryRuangan:
		return ruanganCol(), nil
	}
	return nil, fmt.Errorf("%w: category %q tidak dikenal", services.ErrValidation, cat)
}

func (s *LoanStore) ResourceExists(ctx context.Context, ref models.ResourceRef) (bool, error) {
	col, err := resourceCol(ref.Category)
	if err != nil {
		return false, err
	}
	return exists(ctx, col, bson.M{"_id": ref.ID})
}

func (s *LoanStore) SetResourceStatus(ctx context.Context, ref models.ResourceRef, inUse bool) (bool, error) {
	col, err := resourceCol(ref.Category)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// hanya cocok bila status berbeda, jadi ModifiedCount menandakan perubahan
	res, err := col.UpdateOne(ctx,
		bson.M{"_id": ref.ID, "status": bson.M{"$ne": inUse}},
		bson.M{"$set": bson.M{"status": inUse}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// HasOpenLoans melaporkan apakah resource masih ada di pengajuan draft,
// pending atau approved.
func HasOpenLoans(ctx context.Context, ref models.ResourceRef) (bool, error) {
	lines, err := findMany[models.Peminjaman](ctx, peminjamanCol(), LineQuery(services.LineFilter{Resource: &ref}),
		options.Find().SetProjection(bson.M{"detail_peminjaman_id": 1, "category": 1}))
	if err != nil {
		return false, err
	}
	if len(lines) == 0 {
		return false, nil
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.DetailPeminjamanID)
	}
	return exists(ctx, detailCol(), DetailQuery(services.DetailFilter{
		IDs:      ids,
		Statuses: []models.LoanStatus{models.StatusDraft, models.StatusPending, models.StatusApproved},
	}))
}

func refuseOpenLoans(ctx context.Context, ref models.ResourceRef) error {
	open, err := HasOpenLoans(ctx, ref)
	if err != nil {
		return err
	}
	if open {
		return fmt.Errorf("%w: %s %s masih ada di pengajuan aktif", services.ErrConflict, ref.Category, ref.ID)
	}
	return nil
}

// ---------- log ----------

func (s *LoanStore) InsertLog(ctx context.Context, userID, action string) error {
	return CreateLog(ctx, userID, action)
}
