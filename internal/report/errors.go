package report

import "errors"

var ErrRenderFailed = errors.New("report rendering failed")
