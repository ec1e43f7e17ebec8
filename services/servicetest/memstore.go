// Package servicetest menyediakan store in-memory untuk test service dan controller.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inventara/models"
	"inventara/notifier"
	"inventara/services"
)

// MemStore adalah LoanStore + NotificationStore di memori untuk test.
type MemStore struct {
	mu        sync.Mutex
	seq       map[string]int
	details   map[string]models.DetailPeminjaman
	lines     map[string]models.Peminjaman
	Resources map[models.ResourceRef]bool
	Logs      []models.Log
	Notifs    []models.Notifikasi
	Devices   []models.Perangkat
	Users     map[string]string // id -> role
	FailSave  map[string]bool   // SaveDetail gagal untuk id ini

	// AfterFind dipanggil setelah FindDetails mengambil snapshot, di luar lock.
	AfterFind func(f services.DetailFilter)
}

func NewMemStore() *MemStore {
	return &MemStore{
		seq:       map[string]int{},
		details:   map[string]models.DetailPeminjaman{},
		lines:     map[string]models.Peminjaman{},
		Resources: map[models.ResourceRef]bool{},
		Users:     map[string]string{},
		FailSave:  map[string]bool{},
	}
}

var idPrefix = map[string]string{
	"detail_peminjaman": "DPJ",
	"peminjaman":        "PJM",
	"notifikasi":        "NTF",
	"perangkat":         "PRK",
}

// RunInTx menyalin state dan memulihkannya bila fn gagal.
func (m *MemStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	details := make(map[string]models.DetailPeminjaman, len(m.details))
	for k, v := range m.details {
		details[k] = v
	}
	resources := make(map[models.ResourceRef]bool, len(m.Resources))
	for k, v := range m.Resources {
		resources[k] = v
	}
	logs := append([]models.Log(nil), m.Logs...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.details, m.Resources, m.Logs = details, resources, logs
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemStore) NextID(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[name]++
	return fmt.Sprintf("%s%03d", idPrefix[name], m.seq[name]), nil
}

func (m *MemStore) GetDetail(_ context.Context, id string) (*models.DetailPeminjaman, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.details[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &d, nil
}

func (m *MemStore) FindDetails(_ context.Context, f services.DetailFilter) ([]models.DetailPeminjaman, error) {
	out := m.findDetails(f)
	if hook := m.AfterFind; hook != nil {
		hook(f)
	}
	return out, nil
}

func (m *MemStore) findDetails(f services.DetailFilter) []models.DetailPeminjaman {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DetailPeminjaman
	for _, d := range m.details {
		if f.UserID != "" && d.UserID != f.UserID {
			continue
		}
		if len(f.IDs) > 0 && !contains(f.IDs, d.ID) {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, d.Status) {
			continue
		}
		if f.BorrowedUntil != nil && (d.BorrowedDate == nil || d.BorrowedDate.After(*f.BorrowedUntil)) {
			continue
		}
		if f.EstimatedUntil != nil && (d.EstimatedTime == nil || d.EstimatedTime.After(*f.EstimatedUntil)) {
			continue
		}
		if f.SubmittedBefore != nil && (d.SubmittedAt == nil || !d.SubmittedAt.Before(*f.SubmittedBefore)) {
			continue
		}
		if f.OverdueNotified != nil && d.OverdueNotified != *f.OverdueNotified {
			continue
		}
		if f.CreatedFrom != nil && d.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && !d.CreatedAt.Before(*f.CreatedTo) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *MemStore) InsertDetail(_ context.Context, d *models.DetailPeminjaman) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.details[d.ID]; ok {
		return services.ErrDuplicate
	}
	m.details[d.ID] = *d
	return nil
}

func (m *MemStore) SaveDetail(_ context.Context, d *models.DetailPeminjaman, expected models.LoanStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave[d.ID] {
		return fmt.Errorf("simulasi gagal simpan %s", d.ID)
	}
	cur, ok := m.details[d.ID]
	if !ok {
		return services.ErrNotFound
	}
	if cur.Status != expected {
		return fmt.Errorf("%w: status pengajuan %s sudah berubah", services.ErrConflict, d.ID)
	}
	m.details[d.ID] = *d
	return nil
}

func (m *MemStore) GetLine(_ context.Context, id string) (*models.Peminjaman, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &l, nil
}

func (m *MemStore) FindLines(_ context.Context, f services.LineFilter) ([]models.Peminjaman, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Peminjaman
	for _, l := range m.lines {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if len(f.DetailIDs) > 0 && !contains(f.DetailIDs, l.DetailPeminjamanID) {
			continue
		}
		if f.Resource != nil && l.Ref() != *f.Resource {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) InsertLine(_ context.Context, p *models.Peminjaman) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[p.ID] = *p
	return nil
}

func (m *MemStore) DeleteLine(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lines[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.lines, id)
	return nil
}

func (m *MemStore) ResourceExists(_ context.Context, ref models.ResourceRef) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Resources[ref]
	return ok, nil
}

func (m *MemStore) SetResourceStatus(_ context.Context, ref models.ResourceRef, inUse bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Resources[ref]
	if !ok {
		return false, services.ErrNotFound
	}
	m.Resources[ref] = inUse
	return cur != inUse, nil
}

func (m *MemStore) InsertLog(_ context.Context, userID, action string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, models.Log{UserID: userID, Action: action, CreatedAt: time.Now()})
	return nil
}

func (m *MemStore) InsertNotifikasi(_ context.Context, n *models.Notifikasi) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifs = append(m.Notifs, *n)
	return nil
}

func (m *MemStore) ListNotifikasi(_ context.Context, userID string) ([]models.Notifikasi, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notifikasi
	for _, n := range m.Notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MemStore) MarkRead(_ context.Context, userID, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Notifs {
		if m.Notifs[i].ID == id && m.Notifs[i].UserID == userID {
			m.Notifs[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) MarkAllRead(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.Notifs {
		if m.Notifs[i].UserID == userID && !m.Notifs[i].IsRead {
			m.Notifs[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *MemStore) UserIDsByRole(_ context.Context, role string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, r := range m.Users {
		if r == role {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemStore) DevicesOfUser(_ context.Context, userID string) ([]models.Perangkat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Perangkat
	for _, d := range m.Devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemStore) UpsertDevice(_ context.Context, p *models.Perangkat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Devices {
		if m.Devices[i].DeviceToken == p.DeviceToken {
			m.Devices[i].UserID = p.UserID
			*p = m.Devices[i]
			return nil
		}
	}
	m.Devices = append(m.Devices, *p)
	return nil
}

func (m *MemStore) DeleteDevice(_ context.Context, userID, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.Devices {
		if d.DeviceToken == token && d.UserID == userID {
			m.Devices = append(m.Devices[:i], m.Devices[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// helper

func (m *MemStore) CategoriesFor(userID string) []models.NotifikasiCategory {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.NotifikasiCategory
	for _, n := range m.Notifs {
		if n.UserID == userID {
			out = append(out, n.Category)
		}
	}
	return out
}

func (m *MemStore) ResourceInUse(ref models.ResourceRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Resources[ref]
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// RecordingSender mencatat setiap push.
type RecordingSender struct {
	mu   sync.Mutex
	Sent []notifier.Message
	Err  error
}

func (r *RecordingSender) Send(_ context.Context, msg notifier.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, msg)
	return nil
}
