package repository

import (
	"context"
	"fmt"
	"time"

	"inventara/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 10 * time.Second

// prefix ID per nama sequence
var idPrefix = map[string]string{
	"user":              "USR",
	"tempat":            "TMP",
	"ruangan":           "RGN",
	"barang":            "BRG",
	"kendaraan":         "KND",
	"detail_peminjaman": "DPJ",
	"peminjaman":        "PJM",
	"notifikasi":        "NTF",
	"perangkat":         "PRK",
	"log":               "LOG",
}

func counterCol() *mongo.Collection {
	return config.CounterCollection
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// GenerateID menaikkan sequence secara atomik dan mengembalikan kode seperti BRG001.
func GenerateID(ctx context.Context, name string) (string, error) {
	prefix, ok := idPrefix[name]
	if !ok {
		return "", fmt.Errorf("sequence %q tidak dikenal", name)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c counter
	err := counterCol().FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&c)
	if err != nil {
		return "", fmt.Errorf("generate id %s: %w", name, err)
	}
	return FormatID(prefix, c.Seq), nil
}

func FormatID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}
