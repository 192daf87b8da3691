// Package iodump writes views and materialized views in dependency order,
// so that the output can be loaded into an empty schema as is. Functions
// come first, views may call them.
package iodump

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/gnviews/internal/iocatalog"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/depgraph"
	"github.com/gnames/gnviews/pkg/relation"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format of the dump.
type Format int

const (
	FormatSQL Format = iota
	FormatYAML
)

// ParseFormat converts "sql" or "yaml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "sql":
		return FormatSQL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatSQL, UnknownFormatError(s)
	}
}

// Entry is one dumped relation or function.
type Entry struct {
	Name         string   `yaml:"name"`
	Function     bool     `yaml:"function,omitempty"`
	Arguments    string   `yaml:"arguments,omitempty"`
	Materialized bool     `yaml:"materialized,omitempty"`
	Definition   string   `yaml:"definition"`
	Indexes      []string `yaml:"indexes,omitempty"`
}

// Dumper reads the catalog through a pool. Catalog reads run
// concurrently, up to jobs at a time.
type Dumper struct {
	catalog *iocatalog.Catalog
	jobs    int
}

// New creates a Dumper. The conn should be a pool, a single transaction
// cannot run queries concurrently.
func New(conn db.Conn, jobs int) *Dumper {
	if jobs < 1 {
		jobs = 1
	}
	return &Dumper{catalog: iocatalog.New(conn), jobs: jobs}
}

// Entries returns all functions, then all relations, every relation
// after its dependencies.
func (d *Dumper) Entries(ctx context.Context) ([]Entry, error) {
	var rels []relation.Relation
	var edges []relation.Edge
	var funcs []relation.Function

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	g.Go(func() error {
		var err error
		rels, err = d.catalog.Relations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		edges, err = d.catalog.Dependencies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		funcs, err = d.catalog.Functions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byKey := make(map[string]relation.Relation, len(rels))
	nodes := make([]relation.Name, len(rels))
	for i, r := range rels {
		byKey[r.Name.Key()] = r
		nodes[i] = r.Name
	}

	order, err := depgraph.New(nodes, edges).FullOrder()
	if err != nil {
		return nil, err
	}

	res := make([]Entry, 0, len(funcs)+len(rels))
	for _, f := range funcs {
		res = append(res, Entry{
			Name:       f.Name.Key(),
			Function:   true,
			Arguments:  f.Arguments,
			Definition: f.Definition,
		})
	}
	for _, key := range order {
		r, ok := byKey[key]
		if !ok {
			continue
		}
		res = append(res, Entry{
			Name:         key,
			Materialized: r.Materialized,
			Definition:   r.Definition,
		})
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	for i := range res {
		if !res[i].Materialized {
			continue
		}
		g.Go(func() error {
			idx, err := d.catalog.Indexes(gctx, byKey[res[i].Name].Name)
			if err != nil {
				return err
			}
			for _, v := range idx {
				res[i].Indexes = append(res[i].Indexes, v.Definition)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Relations read for dump",
		"relations", len(rels),
		"functions", len(funcs),
	)
	return res, nil
}

// Write dumps all relations to w.
func (d *Dumper) Write(ctx context.Context, w io.Writer, f Format) error {
	entries, err := d.Entries(ctx)
	if err != nil {
		return err
	}

	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}
	return WriteSQL(w, entries)
}

// WriteSQL writes entries as CREATE statements. Materialized views are
// created without data.
func WriteSQL(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, statement(e)); err != nil {
			return err
		}
	}
	return nil
}

func statement(e Entry) string {
	if e.Function {
		def := strings.TrimSpace(e.Definition)
		if !strings.HasSuffix(def, ";") {
			def += ";"
		}
		return def + "\n"
	}

	var sb strings.Builder
	name := relation.MustParseName(e.Name).Qualified()
	body := strings.TrimRight(strings.TrimSpace(e.Definition), ";")

	if e.Materialized {
		fmt.Fprintf(&sb, "CREATE MATERIALIZED VIEW %s AS\n%s\nWITH NO DATA;\n", name, body)
		for _, idx := range e.Indexes {
			fmt.Fprintf(&sb, "%s;\n", idx)
		}
		return sb.String()
	}
	fmt.Fprintf(&sb, "CREATE VIEW %s AS\n%s;\n", name, body)
	return sb.String()
}
