package helper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

// formFile membangun *multipart.FileHeader dari bytes.
func formFile(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["file"][0]
}

func newTestUploader(t *testing.T) (*Uploader, *LocalStore) {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	u := NewUploader(store, "")
	u.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	return u, store
}

func TestUploaderStoresPDFRaw(t *testing.T) {
	u, store := newTestUploader(t)
	pdf := []byte("%PDF-1.4\n% buletin iklim\n")

	obj, err := u.Put(context.Background(), "", formFile(t, "Buletin Iklim Mei.pdf", pdf))
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^pdf/buletin-iklim-mei_20240501_080000_[0-9a-f]{6}\.pdf$`).MatchString(obj.Key) {
		t.Fatalf("unexpected key %q", obj.Key)
	}
	if obj.URL != "/uploads/"+obj.Key || obj.ContentType != "application/pdf" || obj.Kind != "pdf" {
		t.Fatalf("unexpected object %+v", obj)
	}
	got, err := os.ReadFile(filepath.Join(store.Root, obj.Key))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pdf) {
		t.Fatal("content changed")
	}
}

func TestUploaderRejectsTooLarge(t *testing.T) {
	u, _ := newTestUploader(t)
	u.MaxSize = 10
	_, err := u.Put(context.Background(), "docs", formFile(t, "besar.pdf", bytes.Repeat([]byte("a"), 11)))
	if err == nil || !strings.Contains(err.Error(), ErrTooLarge.Error()) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestUploaderRejectsBrokenImage(t *testing.T) {
	u, _ := newTestUploader(t)
	_, err := u.Put(context.Background(), "", formFile(t, "rusak.png", []byte("bukan gambar")))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDecodeImageAndDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	decoded, err := decodeImage(buf.Bytes(), "radar.png")
	if err != nil {
		t.Fatal(err)
	}
	small := downscaleIfNeeded(decoded, 100, 100)
	if b := small.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("got %dx%d", b.Dx(), b.Dy())
	}
	if same := downscaleIfNeeded(decoded, 0, 0); same != decoded {
		t.Fatal("no-limit should return source")
	}
}

func TestLocalStoreKeepsKeysInsideRoot(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.PutObject(context.Background(), "../../etc/evil.txt", strings.NewReader("x"), "text/plain"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(store.Root, "etc", "evil.txt")); err != nil {
		t.Fatalf("file not confined to root: %v", err)
	}
	if err := store.DeleteObject(context.Background(), "etc/evil.txt"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteObject(context.Background(), "etc/evil.txt"); err != nil {
		t.Fatalf("deleting missing object should be a no-op: %v", err)
	}
}
