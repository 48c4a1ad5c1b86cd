package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	ossHelper "stamet_backend/internals/helpers/oss"
)

type memStore struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func (m *memStore) PutObject(_ context.Context, key string, r io.Reader, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[key] = b
	return nil
}

func (m *memStore) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objs, key)
	return nil
}

func (m *memStore) PublicURL(key string) string { return "https://cdn.test/" + key }

func multipartBody(t *testing.T, field, name string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range extra {
		_ = w.WriteField(k, v)
	}
	if field != "" {
		fw, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(content)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func newApp(up *ossHelper.Uploader) *fiber.App {
	app := fiber.New()
	app.Post("/uploads", NewUploadController(up, nil).Upload)
	return app
}

func TestUploadStoresPDF(t *testing.T) {
	store := &memStore{objs: map[string][]byte{}}
	app := newApp(ossHelper.NewUploader(store, ""))

	body, ct := multipartBody(t, "file", "Laporan Iklim.pdf", []byte("%PDF-1.4 isi"), map[string]string{"folder": "documents"})
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Data ossHelper.Object `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.Data.Key, "documents/laporan-iklim_") || !strings.HasPrefix(out.Data.URL, "https://cdn.test/") {
		t.Fatalf("unexpected object: %+v", out.Data)
	}
	if len(store.objs) != 1 {
		t.Fatalf("stored %d objects", len(store.objs))
	}
}

func TestUploadTooLarge(t *testing.T) {
	store := &memStore{objs: map[string][]byte{}}
	up := ossHelper.NewUploader(store, "")
	up.MaxSize = 8
	app := newApp(up)

	body, ct := multipartBody(t, "file", "a.pdf", []byte("0123456789"), nil)
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
}

func TestUploadRejectsMissingFileAndUnknownFolder(t *testing.T) {
	app := newApp(ossHelper.NewUploader(&memStore{objs: map[string][]byte{}}, ""))

	body, ct := multipartBody(t, "", "", nil, map[string]string{"folder": "articles"})
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", ct)
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("missing file status = %d", resp.StatusCode)
	}

	body, ct = multipartBody(t, "file", "a.pdf", []byte("x"), map[string]string{"folder": "../etc"})
	req = httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", ct)
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad folder status = %d", resp.StatusCode)
	}
}
