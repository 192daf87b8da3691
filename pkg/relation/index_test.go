package relation_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportsIndex(def string) relation.Index {
	return relation.Index{
		Owner:      relation.Name{Schema: "public", Local: "reports"},
		IndexName:  "idx_reports_date",
		Definition: def,
	}
}

func TestRetarget(t *testing.T) {
	tmp := relation.Name{Schema: "public", Local: "reports_new_0a1b2c3d"}
	tests := []struct {
		msg, def, res string
	}{
		{
			"qualified",
			"CREATE INDEX idx_reports_date ON public.reports USING btree (date)",
			"CREATE INDEX idx_reports_date ON public.reports_new_0a1b2c3d USING btree (date)",
		},
		{
			"unique",
			"CREATE UNIQUE INDEX idx_reports_date ON public.reports USING btree (id)",
			"CREATE UNIQUE INDEX idx_reports_date ON public.reports_new_0a1b2c3d USING btree (id)",
		},
		{
			"bare owner",
			"CREATE INDEX idx_reports_date ON reports USING btree (date)",
			"CREATE INDEX idx_reports_date ON reports_new_0a1b2c3d USING btree (date)",
		},
		{
			"only",
			"CREATE INDEX idx_reports_date ON ONLY public.reports USING btree (date)",
			"CREATE INDEX idx_reports_date ON ONLY public.reports_new_0a1b2c3d USING btree (date)",
		},
		{
			"column named like owner",
			"CREATE INDEX idx_reports_date ON public.reports USING btree (reports)",
			"CREATE INDEX idx_reports_date ON public.reports_new_0a1b2c3d USING btree (reports)",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := reportsIndex(v.def).Retarget(tmp)
			require.NoError(t, err)
			assert.Equal(t, v.res, res.Definition)
			assert.Equal(t, tmp, res.Owner)
			assert.Equal(t, "idx_reports_date", res.IndexName)
		})
	}
}

func TestRetargetQuoted(t *testing.T) {
	idx := relation.Index{
		Owner:      relation.Name{Schema: "public", Local: "Reports"},
		IndexName:  "Idx",
		Definition: `CREATE INDEX "Idx" ON public."Reports" USING btree (date)`,
	}
	res, err := idx.Retarget(relation.Name{Schema: "public", Local: "reports"})
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE INDEX "Idx" ON public.reports USING btree (date)`,
		res.Definition)
}

func TestRetargetKeywordOwner(t *testing.T) {
	tests := []struct {
		msg, def string
		to       relation.Name
		res      string
	}{
		{
			"quoted keyword owner",
			`CREATE INDEX user_id_idx ON public."user" USING btree (id)`,
			relation.Name{Schema: "public", Local: "user_new_0a1b2c3d"},
			`CREATE INDEX user_id_idx ON public.user_new_0a1b2c3d USING btree (id)`,
		},
		{
			"keyword target",
			`CREATE INDEX user_id_idx ON public."user" USING btree (id)`,
			relation.Name{Schema: "public", Local: "order"},
			`CREATE INDEX user_id_idx ON public."order" USING btree (id)`,
		},
		{
			"keyword rendered bare by an older server",
			`CREATE INDEX user_id_idx ON public.user USING btree (id)`,
			relation.Name{Schema: "public", Local: "people"},
			`CREATE INDEX user_id_idx ON public.people USING btree (id)`,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			idx := relation.Index{
				Owner:      relation.Name{Schema: "public", Local: "user"},
				IndexName:  "user_id_idx",
				Definition: v.def,
			}
			res, err := idx.Retarget(v.to)
			require.NoError(t, err)
			assert.Equal(t, v.res, res.Definition)
		})
	}
}

func TestRenamedKeywordIndex(t *testing.T) {
	idx := relation.Index{
		Owner:      relation.Name{Schema: "public", Local: "grants"},
		IndexName:  "select",
		Definition: `CREATE INDEX "select" ON public.grants USING btree (id)`,
	}
	res, err := idx.Renamed("order")
	require.NoError(t, err)
	assert.Equal(t,
		`CREATE INDEX "order" ON public.grants USING btree (id)`,
		res.Definition)
}

func TestRetargetErrors(t *testing.T) {
	tests := []struct {
		msg, def string
	}{
		{"foreign owner", "CREATE INDEX idx_reports_date ON public.other USING btree (date)"},
		{"other name", "CREATE INDEX idx_other ON public.reports USING btree (date)"},
		{"not an index", "SELECT 1"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := reportsIndex(v.def).Retarget(relation.Name{Local: "x"})
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.IndexDefinitionError, gnErr.Code)
		})
	}
}

func TestRenamed(t *testing.T) {
	idx := reportsIndex(
		"CREATE INDEX idx_reports_date ON public.reports USING btree (date)")
	res, err := idx.Renamed("idx_stats_date")
	require.NoError(t, err)
	assert.Equal(t, "idx_stats_date", res.IndexName)
	assert.Equal(t,
		"CREATE INDEX idx_stats_date ON public.reports USING btree (date)",
		res.Definition)
	assert.Equal(t, idx.Owner, res.Owner)
}
