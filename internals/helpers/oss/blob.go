// Package helper (oss) menyimpan file unggahan ke Alibaba OSS atau disk lokal.
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"stamet_backend/internals/constants"
)

var (
	ErrTooLarge         = errors.New("ukuran file melebihi batas")
	ErrEmptyFile        = errors.New("file kosong")
	ErrUnsupportedImage = errors.New("format gambar tidak didukung (pakai jpg/png/webp)")
)

// BlobStore: sink penyimpanan object. Key relatif, tanpa "/" di depan.
type BlobStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Kind        string `json:"kind"`
}

// Uploader menerima file form, menolak yang > MaxSize, mengubah gambar ke WebP,
// lalu menaruhnya di Store dengan nama yang digenerate.
type Uploader struct {
	Store   BlobStore
	Prefix  string
	MaxSize int64
	WebP    WebPOptions
	now     func() time.Time
}

func NewUploader(store BlobStore, prefix string) *Uploader {
	return &Uploader{
		Store:   store,
		Prefix:  strings.Trim(prefix, "/"),
		MaxSize: constants.MaxUploadBytes,
		WebP:    defaultWebPOptionsFromEnv(),
		now:     time.Now,
	}
}

// Put menyimpan fh di bawah dir dan mengembalikan URL publiknya.
func (u *Uploader) Put(ctx context.Context, dir string, fh *multipart.FileHeader) (Object, error) {
	if fh == nil {
		return Object{}, ErrEmptyFile
	}
	if fh.Size > u.MaxSize {
		return Object{}, fmt.Errorf("%w (maks %d MB)", ErrTooLarge, u.MaxSize>>20)
	}
	if fh.Size == 0 {
		return Object{}, ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return Object{}, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	kind := constants.DetectFileTypeFromExt(fh.Filename)
	if dir == "" {
		dir = kind.UploadDir()
	}

	var (
		body io.Reader
		ct   string
		size = fh.Size
		name = fh.Filename
	)
	if kind == constants.FileImage {
		data, err := ConvertToWebP(src, fh.Filename, u.WebP)
		if err != nil {
			return Object{}, err
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
		ct = "image/webp"
		body = bytes.NewReader(data)
		size = int64(len(data))
	} else {
		ct, body = detectContentType(src, fh.Filename)
	}

	key := u.objectKey(dir, name)
	if err := u.Store.PutObject(ctx, key, body, ct); err != nil {
		return Object{}, fmt.Errorf("simpan object: %w", err)
	}
	return Object{
		Key:         key,
		URL:         u.Store.PublicURL(key),
		ContentType: ct,
		Size:        size,
		Kind:        kind.String(),
	}, nil
}

func (u *Uploader) objectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	now := time.Now
	if u.now != nil {
		now = u.now
	}
	parts := make([]string, 0, 3)
	if u.Prefix != "" {
		parts = append(parts, u.Prefix)
	}
	if d := slugify(strings.Trim(dir, "/")); d != "file" {
		parts = append(parts, d)
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", base, now().Format("20060102_150405"), randHex(3), ext))
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType: ekstensi dulu, lalu sniff 512 byte pertama.
func detectContentType(src multipart.File, filename string) (string, io.Reader) {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(head[:n])
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return ct, io.MultiReader(bytes.NewReader(head[:n]), src)
	}
	return ct, src
}
