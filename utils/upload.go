package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedPhotoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// PhotoName membuat nama file unik dengan ekstensi asli.
func PhotoName(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedPhotoExt[ext] {
		return "", fmt.Errorf("tipe file %q tidak didukung", ext)
	}
	return uuid.NewString() + ext, nil
}

// SavePhoto menyimpan file upload ke dir dan mengembalikan nama file.
func SavePhoto(fh *multipart.FileHeader, dir string) (string, error) {
	name, err := PhotoName(fh.Filename)
	if err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return name, writeFile(dir, name, src)
}

// SavePhotoBytes dipakai importer untuk gambar yang tertanam di spreadsheet.
func SavePhotoBytes(data []byte, ext, dir string) (string, error) {
	name, err := PhotoName("foto" + ext)
	if err != nil {
		return "", err
	}
	return name, writeFile(dir, name, bytes.NewReader(data))
}

func writeFile(dir, name string, r io.Reader) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// RemovePhoto menghapus file lama; file yang sudah tidak ada diabaikan.
func RemovePhoto(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
