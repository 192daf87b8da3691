// Package iodefs reads versioned view definitions from a directory.
// A definition of version 2 of stats.daily is kept in stats.daily_v02.sql,
// relations in the public schema have no schema prefix.
package iodefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// Source implements lifecycle.DefinitionSource on top of a directory.
type Source struct {
	dir string
}

var _ lifecycle.DefinitionSource = (*Source)(nil)

// New creates a Source for dir. The directory is read on every call.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the definitions directory.
func (s *Source) Dir() string {
	return s.dir
}

// FileName returns the definition file name for a relation and version.
func FileName(name relation.Name, version int) string {
	return fmt.Sprintf("%s_v%02d.sql", name.FileBase(), version)
}

// Location implements lifecycle.DefinitionSource.
func (s *Source) Location(name relation.Name, version int) string {
	return filepath.Join(s.dir, FileName(name, version))
}

// Definition implements lifecycle.DefinitionSource. A missing file or a
// file with only whitespace is an error.
func (s *Source) Definition(name relation.Name, version int) (string, error) {
	path := s.Location(name, version)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", DefinitionNotFoundError(name, version, path, err)
	}

	res := strings.TrimSpace(string(data))
	if res == "" {
		return "", DefinitionEmptyError(name, version, path)
	}
	return res, nil
}

// Versions returns the versions that have a definition file, in ascending
// order.
func (s *Source) Versions(name relation.Name) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(name.FileBase()) + `_v(\d+)\.sql$`)
	var res []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil || v == 0 {
			continue
		}
		res = append(res, v)
	}
	sort.Ints(res)
	return res, nil
}

// Latest returns the highest version with a definition, or 0.
func (s *Source) Latest(name relation.Name) (int, error) {
	vv, err := s.Versions(name)
	if err != nil || len(vv) == 0 {
		return 0, err
	}
	return vv[len(vv)-1], nil
}

// Write stores a definition as the given version. Existing files are not
// overwritten.
func (s *Source) Write(name relation.Name, version int, sql string) (string, error) {
	path := s.Location(name, version)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", DefinitionWriteError(path, err)
	}
	defer f.Close()

	if _, err = f.WriteString(strings.TrimSpace(sql) + "\n"); err != nil {
		return "", DefinitionWriteError(path, err)
	}
	return path, nil
}
