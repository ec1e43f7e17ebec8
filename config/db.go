package config

import (
	"context"
	"fmt"
	"time"

	"inventara/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variabel untuk koleksi
var (
	Client                     *mongo.Client
	DB                         *mongo.Database
	UserCollection             *mongo.Collection
	TempatCollection           *mongo.Collection
	RuanganCollection          *mongo.Collection
	BarangCollection           *mongo.Collection
	KendaraanCollection        *mongo.Collection
	DetailPeminjamanCollection *mongo.Collection
	PeminjamanCollection       *mongo.Collection
	NotifikasiCollection       *mongo.Collection
	PerangkatCollection        *mongo.Collection
	LogCollection              *mongo.Collection
	CounterCollection          *mongo.Collection
)

func ConnectDB(ctx context.Context, cfg *Config) error {
	logging.Info().Str("db_name", cfg.DBName).Msg("menghubungkan ke MongoDB")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("gagal connect ke MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB tidak bisa diakses: %w", err)
	}

	UseDatabase(client, cfg.DBName)
	logging.Info().Msg("terhubung ke MongoDB, semua koleksi siap")
	return nil
}

// UseDatabase mengisi variabel koleksi global dari client yang sudah terhubung.
func UseDatabase(client *mongo.Client, dbName string) {
	Client = client
	DB = client.Database(dbName)

	UserCollection = DB.Collection("users")
	TempatCollection = DB.Collection("tempats")
	RuanganCollection = DB.Collection("ruangans")
	BarangCollection = DB.Collection("barangs")
	KendaraanCollection = DB.Collection("kendaraans")
	DetailPeminjamanCollection = DB.Collection("detail_peminjamans")
	PeminjamanCollection = DB.Collection("peminjamans")
	NotifikasiCollection = DB.Collection("notifikasis")
	PerangkatCollection = DB.Collection("perangkats")
	LogCollection = DB.Collection("logs")
	CounterCollection = DB.Collection("counters")
}

func DisconnectDB(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}
