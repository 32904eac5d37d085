package container

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/tsawler/ofd/model"
)

// Session-level errors.
var (
	ErrInvalidArchive = errors.New("ofd: invalid or corrupted archive")
	ErrEntryNotFound  = errors.New("ofd: archive entry not found")
)

// Session provides access to an open OFD package. It owns the archive
// handle and the selected document's root descriptor path; everything
// else is read on demand through ReadEntry.
type Session struct {
	zr       *zip.ReadCloser
	zrReader *zip.Reader // for when opened from io.ReaderAt
	docRoot  string      // e.g. "Doc_0/Document.xml"
	baseDir  string      // directory containing the root descriptor
	info     model.DocInfo
	gbkNames map[string]*zip.File // GB18030-decoded aliases for non-UTF-8 entry names
}

// Open opens an OFD package from a path.
func Open(filePath string) (*Session, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	s := &Session{zr: zr}
	if err := s.init(&zr.Reader); err != nil {
		zr.Close()
		return nil, err
	}

	return s, nil
}

// OpenReader opens an OFD package from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Session, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	s := &Session{zrReader: zr}
	if err := s.init(zr); err != nil {
		return nil, err
	}

	return s, nil
}

// init locates the root descriptor and indexes non-UTF-8 entry names.
func (s *Session) init(zr *zip.Reader) error {
	docRoot, info, err := parseEntryPoint(zr)
	if err != nil {
		return err
	}

	s.docRoot = docRoot
	s.baseDir = path.Dir(docRoot)
	if s.baseDir == "." {
		s.baseDir = ""
	}
	s.info = info

	dec := simplifiedchinese.GB18030.NewDecoder()
	for _, f := range zr.File {
		if !f.NonUTF8 {
			continue
		}
		decoded, err := dec.String(f.Name)
		if err != nil || decoded == f.Name {
			continue
		}
		if s.gbkNames == nil {
			s.gbkNames = make(map[string]*zip.File)
		}
		s.gbkNames[decoded] = f
	}

	return nil
}

func (s *Session) reader() *zip.Reader {
	if s.zr != nil {
		return &s.zr.Reader
	}
	return s.zrReader
}

// DocRoot returns the archive path of the document root descriptor.
func (s *Session) DocRoot() string {
	return s.docRoot
}

// BaseDir returns the directory containing the root descriptor, the
// prefix all document-relative resource paths resolve against.
func (s *Session) BaseDir() string {
	return s.baseDir
}

// Info returns the document metadata from the package entry point.
func (s *Session) Info() model.DocInfo {
	return s.info
}

// ReadEntry reads an archive entry by exact, case-sensitive name and
// returns its bytes. One failed lookup is one failed read: there is
// no retry, no normalization beyond the GB18030 alias index built at
// open, and no caching; repeated reads hit the archive again.
func (s *Session) ReadEntry(name string) ([]byte, error) {
	for _, f := range s.reader().File {
		if f.Name == name {
			return readAll(f)
		}
	}
	if f, ok := s.gbkNames[name]; ok {
		return readAll(f)
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// EntryExists reports whether the named entry is present, without
// reading it.
func (s *Session) EntryExists(name string) bool {
	for _, f := range s.reader().File {
		if f.Name == name {
			return true
		}
	}
	_, ok := s.gbkNames[name]
	return ok
}

// ResolveLoc resolves a descriptor location against the document base
// directory. Locations starting with "/" are absolute within the
// package.
func (s *Session) ResolveLoc(loc string) string {
	if strings.HasPrefix(loc, "/") {
		return strings.TrimPrefix(loc, "/")
	}
	if s.baseDir == "" {
		return loc
	}
	return path.Join(s.baseDir, loc)
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Close closes the session and releases the archive handle.
func (s *Session) Close() error {
	if s.zr != nil {
		return s.zr.Close()
	}
	return nil
}
