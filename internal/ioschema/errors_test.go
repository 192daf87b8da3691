package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		wrap bool
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, false},
		{"gorm", GORMConnectionError(originalErr), errcode.DBGORMConnectionError, true},
		{"migrate", MigrateSchemaError(originalErr), errcode.JournalSchemaError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			if tt.wrap {
				assert.ErrorIs(t, gnErr.Err, originalErr)
			}
		})
	}
}
