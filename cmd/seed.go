package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"inventara/controllers"
	"inventara/logging"
	"inventara/models"
	"inventara/repository"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Isi database dengan data master contoh",
	Long: `Membuat user contoh (headOffice dan user), dua tempat, beberapa ruangan,
barang dan kendaraan. Dilewati bila koleksi tempat sudah berisi, kecuali --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context) error {
			if err := ensureDefaultAdmin(ctx, cfg); err != nil {
				return err
			}
			existing, err := repository.GetAllTempat(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 && !seedForce {
				logging.Info().Int("tempat", len(existing)).Msg("data master sudah ada, seed dilewati")
				return nil
			}
			return seed(ctx)
		})
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "tetap seed walau data master sudah ada")
}

type seedTempat struct {
	name, category string
	ruangans       []seedRuangan
	kendaraans     []models.Kendaraan
}

type seedRuangan struct {
	code, category string
	capacity       int
	barangs        []models.Barang
}

func seedData(now time.Time) []seedTempat {
	warranty := now.AddDate(2, 0, 0)
	tax := now.AddDate(1, 0, 0)
	return []seedTempat{
		{
			name: "Gedung Utama", category: "gedung",
			ruangans: []seedRuangan{
				{code: "R-101", category: "kelas", capacity: 40, barangs: []models.Barang{
					{Name: "Proyektor Epson", Code: "PRJ-01", Condition: "baik", Warranty: warranty},
					{Name: "Speaker Aktif", Code: "SPK-01", Condition: "baik", Warranty: warranty},
				}},
				{code: "R-201", category: "lab", capacity: 25, barangs: []models.Barang{
					{Name: "Laptop Lenovo", Code: "LPT-01", Condition: "baik", Warranty: warranty},
				}},
				{code: "G-01", category: "gudang", capacity: 0, barangs: []models.Barang{
					{Name: "Kamera DSLR", Code: "CAM-01", Condition: "rusak ringan", Warranty: warranty},
				}},
			},
		},
		{
			name: "Parkiran Timur", category: "parkiran",
			kendaraans: []models.Kendaraan{
				{Name: "Toyota Avanza", Plat: "B 1234 XYZ", Condition: "baik", Capacity: 7, Category: "mobil", Color: "hitam", Warranty: warranty, Tax: tax},
				{Name: "Honda Beat", Plat: "B 5678 ABC", Condition: "baik", Capacity: 2, Category: "motor", Color: "merah", Warranty: warranty, Tax: tax},
			},
		},
	}
}

func seed(ctx context.Context) error {
	now := time.Now()
	if err := seedUsers(ctx, now); err != nil {
		return err
	}

	var counts struct{ tempat, ruangan, barang, kendaraan int }
	for _, st := range seedData(now) {
		tempatID, err := repository.GenerateID(ctx, "tempat")
		if err != nil {
			return err
		}
		if err := repository.CreateTempat(ctx, &models.Tempat{ID: tempatID, Name: st.name, Category: st.category, CreatedAt: now}); err != nil {
			return fmt.Errorf("tempat %s: %w", st.name, err)
		}
		counts.tempat++

		for _, sr := range st.ruangans {
			ruanganID, err := repository.GenerateID(ctx, "ruangan")
			if err != nil {
				return err
			}
			r := &models.Ruangan{ID: ruanganID, Code: sr.code, Capacity: sr.capacity, Category: sr.category, TempatID: tempatID, CreatedAt: now}
			if err := repository.CreateRuangan(ctx, r); err != nil {
				return fmt.Errorf("ruangan %s: %w", sr.code, err)
			}
			counts.ruangan++

			for _, b := range sr.barangs {
				if b.ID, err = repository.GenerateID(ctx, "barang"); err != nil {
					return err
				}
				b.RuanganID, b.CreatedAt = ruanganID, now
				if err := repository.CreateBarang(ctx, &b); err != nil {
					return fmt.Errorf("barang %s: %w", b.Code, err)
				}
				counts.barang++
			}
		}

		for _, k := range st.kendaraans {
			if k.ID, err = repository.GenerateID(ctx, "kendaraan"); err != nil {
				return err
			}
			k.TempatID, k.CreatedAt = tempatID, now
			if err := repository.CreateKendaraan(ctx, &k); err != nil {
				return fmt.Errorf("kendaraan %s: %w", k.Plat, err)
			}
			counts.kendaraan++
		}
	}

	logging.Info().
		Int("tempat", counts.tempat).
		Int("ruangan", counts.ruangan).
		Int("barang", counts.barang).
		Int("kendaraan", counts.kendaraan).
		Msg("seed data master selesai")
	return nil
}

func seedUsers(ctx context.Context, now time.Time) error {
	hashed, err := controllers.HashPassword(cfg.DefaultPassword)
	if err != nil {
		return err
	}
	users := []models.User{
		{Name: "Kepala Kantor", Email: "kepala@inventara.local", Role: models.RoleHeadOffice, Division: "Pimpinan", Place: "Kantor Pusat"},
		{Name: "Budi Santoso", Email: "budi@inventara.local", Role: models.RoleUser, Division: "IT", Place: "Kantor Pusat"},
	}
	for _, u := range users {
		if _, err := repository.GetUserByEmail(ctx, u.Email); err == nil {
			continue
		}
		if u.ID, err = repository.GenerateID(ctx, "user"); err != nil {
			return err
		}
		u.Password, u.CreatedAt = hashed, now
		if err := repository.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	return nil
}
