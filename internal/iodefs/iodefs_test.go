package iodefs_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iodefs"
	"github.com/gnames/gnviews/internal/iotesting"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		msg     string
		name    relation.Name
		version int
		res     string
	}{
		{"public", relation.Name{Schema: "public", Local: "reports"}, 1, "reports_v01.sql"},
		{"bare", relation.Name{Local: "reports"}, 12, "reports_v12.sql"},
		{"schema", relation.Name{Schema: "stats", Local: "daily"}, 3, "stats.daily_v03.sql"},
		{"three digits", relation.Name{Local: "reports"}, 100, "reports_v100.sql"},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, iodefs.FileName(v.name, v.version), v.msg)
	}
}

func TestDefinition(t *testing.T) {
	dir := iotesting.WriteDefinitions(t, map[string]string{
		"reports_v01.sql": "SELECT 1 AS id\n",
		"reports_v02.sql": "  \n\t",
	})
	src := iodefs.New(dir)
	reports := relation.MustParseName("reports")

	sql, err := src.Definition(reports, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 AS id", sql)
	assert.Equal(t, filepath.Join(dir, "reports_v01.sql"), src.Location(reports, 1))

	tests := []struct {
		msg     string
		version int
		code    gn.ErrorCode
	}{
		{"empty", 2, errcode.DefinitionEmptyError},
		{"missing", 3, errcode.DefinitionNotFoundError},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := src.Definition(reports, v.version)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
		})
	}
}

func TestVersions(t *testing.T) {
	dir := iotesting.WriteDefinitions(t, map[string]string{
		"reports_v02.sql":      "SELECT 2",
		"reports_v01.sql":      "SELECT 1",
		"reports_v10.sql":      "SELECT 10",
		"reports_daily_v01.sql": "SELECT 1",
		"reports_v03.txt":      "SELECT 3",
	})
	src := iodefs.New(dir)

	res, err := src.Versions(relation.MustParseName("reports"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 10}, res)

	latest, err := src.Latest(relation.MustParseName("reports"))
	require.NoError(t, err)
	assert.Equal(t, 10, latest)

	latest, err = src.Latest(relation.MustParseName("other"))
	require.NoError(t, err)
	assert.Equal(t, 0, latest)

	res, err = iodefs.New(filepath.Join(dir, "missing")).
		Versions(relation.MustParseName("reports"))
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestWrite(t *testing.T) {
	src := iodefs.New(t.TempDir())
	name := relation.MustParseName("stats.daily")

	path, err := src.Write(name, 1, "SELECT 1;\n\n")
	require.NoError(t, err)
	assert.Equal(t, src.Location(name, 1), path)

	sql, err := src.Definition(name, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", sql)

	_, err = src.Write(name, 1, "SELECT 2")
	assert.Error(t, err)
}
