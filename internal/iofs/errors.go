package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// CreateDirError is returned when a config, log or definitions directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: cannot create directory: %w", fn.Name(), err),
	}
}

func WriteConfigError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteConfigError,
		Msg:  "Cannot write default gnviews config to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot write config: %w", fn.Name(), err),
	}
}

// ReadConfigError is returned when config.yaml exists but cannot be read
// or parsed.
func ReadConfigError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadConfigError,
		Msg:  "Cannot read config <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read config %s: %w", fn.Name(), path, err),
	}
}
