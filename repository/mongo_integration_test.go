//go:build integration

package repository

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventara/config"
	"inventara/models"
	"inventara/services"
)

// go test -tags integration ./repository/...

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func startMongo(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test dilewati pada mode short")
	}
	if !dockerAvailable() {
		t.Skip("Docker tidak tersedia")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("gagal menghentikan container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	config.UseDatabase(client, "inventara_test")
	require.NoError(t, EnsureIndexes(ctx))
}

func TestMongo_GenerateID(t *testing.T) {
	startMongo(t)
	ctx := context.Background()

	first, err := GenerateID(ctx, "barang")
	require.NoError(t, err)
	second, err := GenerateID(ctx, "barang")
	require.NoError(t, err)

	assert.Equal(t, "BRG001", first)
	assert.Equal(t, "BRG002", second)

	_, err = GenerateID(ctx, "produk")
	assert.Error(t, err)
}

func TestMongo_MasterDataAndLoanLifecycle(t *testing.T) {
	startMongo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, CreateTempat(ctx, &models.Tempat{ID: "TMP001", Name: "Parkiran Utama", Category: "parkiran", CreatedAt: now}))
	assert.ErrorIs(t, CreateTempat(ctx, &models.Tempat{ID: "TMP002", Name: "Parkiran Utama", Category: "parkiran"}), services.ErrDuplicate)

	err := CreateKendaraan(ctx, &models.Kendaraan{ID: "KND001", Name: "Avanza", Plat: "B 1 XYZ", TempatID: "TMP404"})
	assert.ErrorIs(t, err, services.ErrNotFound, "tempat harus ada")
	require.NoError(t, CreateKendaraan(ctx, &models.Kendaraan{ID: "KND001", Name: "Avanza", Plat: "B 1 XYZ", TempatID: "TMP001", CreatedAt: now}))

	for _, u := range []models.User{
		{ID: "USR001", Name: "Kepala", Email: "kepala@inventara.local", Role: models.RoleHeadOffice},
		{ID: "USR002", Name: "Budi", Email: "budi@inventara.local", Role: models.RoleUser},
	} {
		u := u
		require.NoError(t, CreateUser(ctx, &u))
	}

	svc := services.NewLoanService(NewLoanStore(false), services.NewNotificationService(NotificationStore{}, nil))
	head := services.Actor{ID: "USR001", Role: models.RoleHeadOffice}
	budi := services.Actor{ID: "USR002", Role: models.RoleUser}

	draft, err := svc.GetOrCreateDraft(ctx, budi)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, budi, models.PeminjamanInput{Category: models.CategoryKendaraan, KendaraanID: "KND001", DetailPeminjamanID: draft.ID})
	require.NoError(t, err)

	_, err = DeleteKendaraanByPlat(ctx, "B 1 XYZ")
	assert.ErrorIs(t, err, services.ErrConflict, "kendaraan masih di draft")

	start := now.Add(-time.Hour)
	end := now.Add(2 * time.Hour)
	d, err := svc.Submit(ctx, budi, models.SubmitInput{ID: draft.ID, BorrowedDate: &start, EstimatedTime: &end, Objective: "dinas"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, head, d.ID)
	require.NoError(t, err)
	k, err := GetKendaraanByPlat(ctx, "B 1 XYZ")
	require.NoError(t, err)
	assert.True(t, k.Status)

	notifs, err := NotificationStore{}.ListNotifikasi(ctx, "USR002")
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifDisetujui, notifs[0].Category)

	_, err = svc.Return(ctx, budi, d.ID)
	require.NoError(t, err)
	k, err = GetKendaraanByPlat(ctx, "B 1 XYZ")
	require.NoError(t, err)
	assert.False(t, k.Status)

	// salinan lama (masih approved) tidak boleh menimpa status returned
	stale := *d
	stale.Status = models.StatusApproved
	stale.OverdueNotified = true
	store := NewLoanStore(false)
	assert.ErrorIs(t, store.SaveDetail(ctx, &stale, models.StatusApproved), services.ErrConflict)
	stale.ID = "DPJ999"
	assert.ErrorIs(t, store.SaveDetail(ctx, &stale, models.StatusApproved), services.ErrNotFound)

	rows, err := GetLaporanPeminjaman(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Budi", rows[0].User.Name)
	assert.Len(t, rows[0].Items, 1)
	assert.Equal(t, models.StatusReturned, rows[0].Status)

	deleted, err := DeleteKendaraanByPlat(ctx, "B 1 XYZ")
	require.NoError(t, err)
	assert.Equal(t, "KND001", deleted.ID)

	logs, err := GetLogs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
