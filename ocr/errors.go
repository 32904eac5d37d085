package ocr

import "errors"

// ErrNotEnabled is returned when OCR support was not compiled in.
// Present in both build configurations so callers can test for it
// unconditionally.
var ErrNotEnabled = errors.New("ocr: support not compiled in; rebuild with -tags ocr")
