package extract

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractionFailed  = errors.New("text extraction failed")
	ErrNoText            = errors.New("document contains no extractable text")
)
