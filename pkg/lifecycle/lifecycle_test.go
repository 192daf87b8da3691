package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnviews/internal/iocatalog"
	"github.com/gnames/gnviews/internal/iodefs"
	"github.com/gnames/gnviews/internal/iologger"
	"github.com/gnames/gnviews/internal/ioschema"
	"github.com/gnames/gnviews/internal/iostatements"
	"github.com/gnames/gnviews/internal/ioviews"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// Implementations of every capability interface.
var (
	_ lifecycle.RelationCatalog  = (*iocatalog.Catalog)(nil)
	_ lifecycle.FunctionCatalog  = (*iocatalog.Catalog)(nil)
	_ lifecycle.Statements       = (*iostatements.Statements)(nil)
	_ lifecycle.Statements       = (*command.Recorder)(nil)
	_ lifecycle.Refresher        = (*ioviews.Adapter)(nil)
	_ lifecycle.DefinitionSource = (*iodefs.Source)(nil)
	_ lifecycle.SchemaManager    = ioschema.NewManager(nil)
	_ lifecycle.Reporter         = iologger.NewReporter(true)
)

func TestReporterFunc(t *testing.T) {
	var got []string
	var r lifecycle.Reporter = lifecycle.ReporterFunc(func(msg string) {
		got = append(got, msg)
	})
	r.Report("one")
	r.Report("two")
	assert.Equal(t, []string{"one", "two"}, got)
}
