package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{GIF, "GIF"},
		{BMP, "BMP"},
		{TIFF, "TIFF"},
		{WebP, "WebP"},
		{OFD, "OFD"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{GIF, ".gif"},
		{BMP, ".bmp"},
		{TIFF, ".tif"},
		{WebP, ".webp"},
		{OFD, ".ofd"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsRaster(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, GIF, BMP, TIFF, WebP} {
		if !f.IsRaster() {
			t.Errorf("%v.IsRaster() = false, want true", f)
		}
	}
	for _, f := range []Format{OFD, Unknown} {
		if f.IsRaster() {
			t.Errorf("%v.IsRaster() = true, want false", f)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"image.png", PNG},
		{"image.PNG", PNG},
		{"photo.jpg", JPEG},
		{"photo.jpeg", JPEG},
		{"photo.JPEG", JPEG},
		{"anim.gif", GIF},
		{"bitmap.bmp", BMP},
		{"scan.tif", TIFF},
		{"scan.tiff", TIFF},
		{"modern.webp", WebP},
		{"invoice.ofd", OFD},
		{"invoice.OFD", OFD},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/Res/image_0.png", PNG},
		{"Doc_0/Res/seal.jpg", JPEG},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "PNG magic bytes",
			data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00},
			want: PNG,
		},
		{
			name: "JPEG magic bytes",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			want: JPEG,
		},
		{
			name: "GIF89a",
			data: []byte("GIF89a\x01\x00"),
			want: GIF,
		},
		{
			name: "GIF87a",
			data: []byte("GIF87a\x01\x00"),
			want: GIF,
		},
		{
			name: "BMP",
			data: []byte{'B', 'M', 0x36, 0x00},
			want: BMP,
		},
		{
			name: "TIFF little endian",
			data: []byte{'I', 'I', 0x2A, 0x00},
			want: TIFF,
		},
		{
			name: "TIFF big endian",
			data: []byte{'M', 'M', 0x00, 0x2A},
			want: TIFF,
		},
		{
			name: "WebP",
			data: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
			want: WebP,
		},
		{
			name: "ZIP magic needs reader inspection",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "short data",
			data: []byte{0x89},
			want: Unknown,
		},
		{
			name: "random data",
			data: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_OFD(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("OFD.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(`<?xml version="1.0"?><ofd:OFD/>`)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != OFD {
		t.Errorf("DetectFromReader() = %v, want OFD", got)
	}
}

func TestDetectFromReader_PlainZIP(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("not an ofd package")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}
}

func TestDetectFromReader_Raster(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != PNG {
		t.Errorf("DetectFromReader() = %v, want PNG", got)
	}
}
