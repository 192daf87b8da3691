package ioplan_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/ioplan"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plan = `
- op: create_view
  name: reports
  args:
    version: 1
    materialized: true
- op: update_view
  name: stats.daily
  args:
    version: 3
    revert_to_version: 2
    materialized:
      side_by_side: true
- op: rename_view
  name: reports
  to: reports_old
  args:
    revert_to_version: 1
    materialized:
      rename_indexes: true
- op: drop_view
  name: '"Odd Name"'
  args:
    revert_to_version: 4
    materialized: false
- op: update_function
  name: stats.total
  args:
    version: 2
    revert_to_version: 1
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plan), 0644))

	res, err := ioplan.Load(path)
	require.NoError(t, err)
	require.Len(t, res, 5)

	assert.Equal(t, command.Command{
		Op:   command.CreateView,
		Name: "reports",
		Args: command.Args{Version: 1, Materialized: &lifecycle.MaterializedOptions{}},
	}, res[0])
	assert.True(t, res[1].Args.Materialized.SideBySide)
	assert.Equal(t, 2, res[1].Args.RevertToVersion)
	assert.Equal(t, "reports_old", res[2].To)
	assert.True(t, res[2].Args.Materialized.RenameIndexes)
	assert.Nil(t, res[3].Args.Materialized)
	assert.Equal(t, `"Odd Name"`, res[3].Name)
	assert.Equal(t, command.Command{
		Op:   command.UpdateFunction,
		Name: "stats.total",
		Args: command.Args{Version: 2, RevertToVersion: 1},
	}, res[4])
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		msg  string
		yaml string
	}{
		{"unknown op", "- op: truncate_view\n  name: reports\n"},
		{"unknown field", "- op: create_view\n  name: reports\n  args:\n    versoin: 1\n"},
		{"bad name", "- op: create_view\n  name: a.b.c\n"},
		{"no name", "- op: create_view\n"},
		{"bad materialized", "- op: create_view\n  name: r\n  args:\n    materialized: maybe\n"},
		{"not a list", "op: create_view\n"},
	}
	for _, v := range tests {
		_, err := ioplan.Read(strings.NewReader(v.yaml))
		assert.Error(t, err, v.msg)
	}

	res, err := ioplan.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = ioplan.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.PlanReadError, gnErr.Code)
}

func TestWriteThenRead(t *testing.T) {
	cmds := []command.Command{
		{
			Op:   command.UpdateView,
			Name: "reports",
			Args: command.Args{
				Version:      2,
				Materialized: &lifecycle.MaterializedOptions{NoData: true},
			},
		},
		{Op: command.ReplaceView, Name: "reports_next", To: "reports", Args: command.Args{Version: 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, ioplan.Write(&buf, cmds))
	assert.Contains(t, buf.String(), "no_data: true")

	res, err := ioplan.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, cmds, res)
}
