package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// CreateLogFileError is returned when gnviews.log cannot be created in
// the log directory.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg: `Cannot create log file <em>%s</em>

Use <em>GNVIEWS_LOG_DESTINATION=stderr</em> to log without a file.`,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot create log file: %w", fn.Name(), err),
	}
}
