package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventara/logging"
	"inventara/metrics"
	"inventara/models"
	"inventara/notifier"
)

// NotificationService menyimpan notifikasi satu baris per user lalu
// mengirim push ke setiap device milik user tersebut.
type NotificationService struct {
	store  NotificationStore
	sender notifier.Sender
	now    func() time.Time
}

func NewNotificationService(store NotificationStore, sender notifier.Sender) *NotificationService {
	if sender == nil {
		sender = notifier.LogSender{}
	}
	return &NotificationService{store: store, sender: sender, now: time.Now}
}

func (s *NotificationService) NotifyUser(ctx context.Context, userID string, category models.NotifikasiCategory, detailID string) error {
	if !category.Valid() {
		return fmt.Errorf("%w: kategori notifikasi %q tidak dikenal", ErrValidation, category)
	}
	id, err := s.store.NextID(ctx, "notifikasi")
	if err != nil {
		return err
	}
	n := &models.Notifikasi{
		ID:                 id,
		Category:           category,
		UserID:             userID,
		DetailPeminjamanID: detailID,
		CreatedAt:          s.now(),
	}
	if err := s.store.InsertNotifikasi(ctx, n); err != nil {
		return err
	}

	devices, err := s.store.DevicesOfUser(ctx, userID)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range devices {
		msg := notifier.Message{
			Token: d.DeviceToken,
			Title: category.Title(),
			Body:  category.Body(),
			Data: map[string]string{
				"category":             string(category),
				"detail_peminjaman_id": detailID,
				"notifikasi_id":        n.ID,
			},
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			metrics.PushSent.WithLabelValues(string(category), "error").Inc()
			errs = append(errs, fmt.Errorf("device %s: %w", d.ID, err))
			continue
		}
		metrics.PushSent.WithLabelValues(string(category), "ok").Inc()
	}
	return errors.Join(errs...)
}

// NotifyRole mengirim ke semua user dengan role tersebut. Role tanpa user
// bukan error, hanya dicatat.
func (s *NotificationService) NotifyRole(ctx context.Context, role string, category models.NotifikasiCategory, detailID string) error {
	ids, err := s.store.UserIDsByRole(ctx, role)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		logging.Warn().Str("role", role).Str("category", string(category)).Msg("tidak ada user penerima notifikasi")
		return nil
	}
	var errs []error
	for _, id := range ids {
		if err := s.NotifyUser(ctx, id, category, detailID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *NotificationService) List(ctx context.Context, actor Actor) ([]models.Notifikasi, error) {
	return s.store.ListNotifikasi(ctx, actor.ID)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id string) error {
	ok, err := s.store.MarkRead(ctx, actor.ID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	return s.store.MarkAllRead(ctx, actor.ID)
}

// RegisterDevice menyimpan device token. Token yang sudah terdaftar dipindah
// ke user yang sedang login.
func (s *NotificationService) RegisterDevice(ctx context.Context, actor Actor, token string) (*models.Perangkat, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: device_token wajib diisi", ErrValidation)
	}
	id, err := s.store.NextID(ctx, "perangkat")
	if err != nil {
		return nil, err
	}
	p := &models.Perangkat{ID: id, DeviceToken: token, UserID: actor.ID}
	if err := s.store.UpsertDevice(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *NotificationService) RemoveDevice(ctx context.Context, actor Actor, token string) error {
	ok, err := s.store.DeleteDevice(ctx, actor.ID, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
