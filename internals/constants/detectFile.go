package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileUnknown FileKind = iota
	FileImage
	FilePDF
	FileDocument
)

// Batas ukuran unggahan (100 MB).
const MaxUploadBytes int64 = 100 << 20

func DetectFileTypeFromExt(filename string) FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileImage
	case ".pdf":
		return FilePDF
	case ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".csv":
		return FileDocument
	default:
		return FileUnknown
	}
}

// UploadDir: folder penyimpanan per jenis file.
func (k FileKind) UploadDir() string {
	switch k {
	case FileImage:
		return "images"
	case FilePDF:
		return "pdf"
	case FileDocument:
		return "documents"
	default:
		return "misc"
	}
}

func (k FileKind) String() string {
	switch k {
	case FileImage:
		return "image"
	case FilePDF:
		return "pdf"
	case FileDocument:
		return "document"
	default:
		return "unknown"
	}
}
