package lifecycle_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "error should be *gn.Error")
	return gnErr.Code
}

func TestCreateOptions(t *testing.T) {
	opts, err := lifecycle.CreateOptions{}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 1, opts.Version)

	opts, err = lifecycle.CreateOptions{SQLDefinition: "SELECT 1"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 0, opts.Version)

	_, err = lifecycle.CreateOptions{Version: 2, SQLDefinition: "SELECT 1"}.Validate()
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))
}

func TestUpdateOptions(t *testing.T) {
	tests := []struct {
		msg  string
		opts lifecycle.UpdateOptions
		code gn.ErrorCode
	}{
		{"version", lifecycle.UpdateOptions{Version: 2}, errcode.UnknownError},
		{"sql", lifecycle.UpdateOptions{SQLDefinition: "SELECT 1"}, errcode.UnknownError},
		{"neither", lifecycle.UpdateOptions{}, errcode.OptionsMissingError},
		{
			"both",
			lifecycle.UpdateOptions{Version: 2, SQLDefinition: "SELECT 1"},
			errcode.OptionsConflictError,
		},
		{
			"no data and side by side",
			lifecycle.UpdateOptions{
				Version: 2,
				Materialized: &lifecycle.MaterializedOptions{
					NoData: true, SideBySide: true,
				},
			},
			errcode.OptionsConflictError,
		},
		{
			"side by side",
			lifecycle.UpdateOptions{
				Version:      2,
				Materialized: &lifecycle.MaterializedOptions{SideBySide: true},
			},
			errcode.UnknownError,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := v.opts.Validate()
			if v.code == errcode.UnknownError {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, v.code, errCode(t, err))
		})
	}
}

func TestReplaceOptions(t *testing.T) {
	to := relation.Name{Local: "reports"}
	assert.NoError(t, lifecycle.ReplaceOptions{}.Validate(to))
	assert.NoError(t, lifecycle.ReplaceOptions{Version: 2}.Validate(relation.Name{}))

	err := lifecycle.ReplaceOptions{}.Validate(relation.Name{})
	assert.Equal(t, errcode.OptionsMissingError, errCode(t, err))

	err = lifecycle.ReplaceOptions{
		Version:      2,
		Materialized: &lifecycle.MaterializedOptions{},
	}.Validate(relation.Name{})
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))
}

func TestRenameOptions(t *testing.T) {
	assert.NoError(t, lifecycle.RenameOptions{}.Validate(relation.Name{Local: "b"}))
	err := lifecycle.RenameOptions{}.Validate(relation.Name{})
	assert.Equal(t, errcode.OptionsMissingError, errCode(t, err))
}

func TestFunctionOptions(t *testing.T) {
	mat := &lifecycle.MaterializedOptions{}

	opts, err := lifecycle.CreateOptions{}.ValidateFunction()
	require.NoError(t, err)
	assert.Equal(t, 1, opts.Version)

	_, err = lifecycle.CreateOptions{Materialized: mat}.ValidateFunction()
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))
	_, err = lifecycle.CreateOptions{Version: 2, SQLDefinition: "x"}.ValidateFunction()
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))

	assert.NoError(t, lifecycle.UpdateOptions{Version: 2}.ValidateFunction())
	err = lifecycle.UpdateOptions{}.ValidateFunction()
	assert.Equal(t, errcode.OptionsMissingError, errCode(t, err))
	err = lifecycle.UpdateOptions{Version: 2, Materialized: mat}.ValidateFunction()
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))

	assert.NoError(t, lifecycle.DropOptions{RevertToVersion: 1}.ValidateFunction())
	err = lifecycle.DropOptions{Materialized: mat}.ValidateFunction()
	assert.Equal(t, errcode.OptionsConflictError, errCode(t, err))
}

func TestFunctionOverloadedError(t *testing.T) {
	name := relation.MustParseName("stats.total")
	err := lifecycle.FunctionOverloadedError(name, []string{
		"stats.total(integer)", "stats.total(text)",
	})
	assert.Equal(t, errcode.FunctionOverloadedError, errCode(t, err))
	gnErr := err.(*gn.Error)
	assert.Equal(t, "stats.total", gnErr.Vars[0])
	assert.Contains(t, gnErr.Vars[1], "stats.total(text)")
	assert.Contains(t, gnErr.Err.Error(), "2 overloads")
}
