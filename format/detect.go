// Package format provides content format detection for the ofd library:
// the raster codecs embedded media may use, and the OFD package format
// itself.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a detected content format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG raster image.
	PNG
	// JPEG indicates a JPEG raster image.
	JPEG
	// GIF indicates a GIF raster image.
	GIF
	// BMP indicates a Windows bitmap image.
	BMP
	// TIFF indicates a TIFF raster image.
	TIFF
	// WebP indicates a WebP raster image.
	WebP
	// OFD indicates an OFD document package (a ZIP archive with an
	// OFD.xml root descriptor).
	OFD
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	case OFD:
		return "OFD"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tif"
	case WebP:
		return ".webp"
	case OFD:
		return ".ofd"
	default:
		return ""
	}
}

// MIME returns the MIME type for the format.
func (f Format) MIME() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	case WebP:
		return "image/webp"
	case OFD:
		return "application/ofd"
	default:
		return ""
	}
}

// IsRaster reports whether the format is a decodable raster image
// codec.
func (f Format) IsRaster() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF, WebP:
		return true
	}
	return false
}

// Detect determines format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	case ".ofd":
		return OFD
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading magic bytes to determine format.
// This is more reliable than extension-based detection; media entries
// in real packages routinely carry wrong or missing extensions.
// Returns Unknown for a bare ZIP signature: a ZIP archive needs
// DetectFromReader to tell an OFD package from any other archive.
func DetectFromMagic(data []byte) Format {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return PNG
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return JPEG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return GIF
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return BMP
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte{'I', 'I', 0x2A, 0x00}) || bytes.Equal(data[:4], []byte{'M', 'M', 0x00, 0x2A})):
		return TIFF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	default:
		return Unknown
	}
}

// DetectFromReader inspects content to determine format. For ZIP
// archives it opens the archive and looks for the OFD root
// descriptor, which magic bytes alone cannot distinguish from other
// ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 12)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if f := DetectFromMagic(magic); f != Unknown {
		return f, nil
	}

	// ZIP magic: PK\x03\x04
	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for the OFD root descriptor.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name == "OFD.xml" {
			return OFD, nil
		}
	}

	return Unknown, nil
}
