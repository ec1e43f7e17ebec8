package services

import (
	"context"
	"time"

	"inventara/models"
)

// DetailFilter selects loan requests. Zero fields are ignored.
type DetailFilter struct {
	UserID          string
	IDs             []string
	Statuses        []models.LoanStatus
	BorrowedUntil   *time.Time // borrowed_date <= value
	EstimatedUntil  *time.Time // estimated_time <= value
	SubmittedBefore *time.Time // submitted_at < value
	OverdueNotified *bool
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// LineFilter selects loan lines. Zero fields are ignored.
type LineFilter struct {
	UserID    string
	DetailIDs []string
	Resource  *models.ResourceRef
}

// LoanStore is the persistence the loan lifecycle needs. Implementations
// return ErrNotFound for missing documents and ErrDuplicate on unique index
// violations.
type LoanStore interface {
	// RunInTx runs fn so that every write made with the ctx it receives
	// commits or aborts together.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	NextID(ctx context.Context, name string) (string, error)

	GetDetail(ctx context.Context, id string) (*models.DetailPeminjaman, error)
	FindDetails(ctx context.Context, f DetailFilter) ([]models.DetailPeminjaman, error)
	InsertDetail(ctx context.Context, d *models.DetailPeminjaman) error
	// SaveDetail replaces d only while its stored status still equals
	// expected; otherwise it returns ErrConflict (or ErrNotFound).
	SaveDetail(ctx context.Context, d *models.DetailPeminjaman, expected models.LoanStatus) error

	GetLine(ctx context.Context, id string) (*models.Peminjaman, error)
	FindLines(ctx context.Context, f LineFilter) ([]models.Peminjaman, error)
	InsertLine(ctx context.Context, p *models.Peminjaman) error
	DeleteLine(ctx context.Context, id string) error

	ResourceExists(ctx context.Context, ref models.ResourceRef) (bool, error)
	// SetResourceStatus sets the in-use flag and reports whether it changed.
	SetResourceStatus(ctx context.Context, ref models.ResourceRef, inUse bool) (bool, error)

	InsertLog(ctx context.Context, userID, action string) error
}

// Notifier delivers lifecycle notifications. NotificationService implements it.
type Notifier interface {
	NotifyUser(ctx context.Context, userID string, category models.NotifikasiCategory, detailID string) error
	NotifyRole(ctx context.Context, role string, category models.NotifikasiCategory, detailID string) error
}

// NotificationStore is the persistence behind NotificationService.
type NotificationStore interface {
	NextID(ctx context.Context, name string) (string, error)
	InsertNotifikasi(ctx context.Context, n *models.Notifikasi) error
	ListNotifikasi(ctx context.Context, userID string) ([]models.Notifikasi, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	UserIDsByRole(ctx context.Context, role string) ([]string, error)
	DevicesOfUser(ctx context.Context, userID string) ([]models.Perangkat, error)
	UpsertDevice(ctx context.Context, p *models.Perangkat) error
	DeleteDevice(ctx context.Context, userID, token string) (bool, error)
}
