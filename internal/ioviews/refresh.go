package ioviews

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnviews/pkg/depgraph"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// RefreshMaterializedView refreshes a materialized view. With Cascade the
// materialized views it depends on are refreshed first, one after
// another, in dependency order.
func (a *Adapter) RefreshMaterializedView(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.RefreshOptions,
) error {
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	if opts.Concurrently && !a.SupportsConcurrentRefresh() {
		return lifecycle.ConcurrentRefreshUnsupportedError(a.serverVersion)
	}

	rel, err := a.require(ctx, name, relation.KindMaterialized)
	if err != nil {
		return err
	}
	if opts.Concurrently && !rel.Populated {
		return lifecycle.UnpopulatedRelationError(rel.Name)
	}

	if opts.Cascade {
		g, err := a.materializedGraph(ctx)
		if err != nil {
			return err
		}
		upstream, err := g.UpstreamOf(rel.Name.Key())
		if err != nil {
			return err
		}
		for _, key := range upstream {
			n, _ := g.Name(key)
			if err = a.refresh(ctx, n, false); err != nil {
				return err
			}
			a.report("materialized view '%s' has been refreshed", key)
		}
	}

	return a.refresh(ctx, rel.Name, opts.Concurrently)
}

// RefreshAll refreshes every materialized view in dependency order.
// Concurrent refresh is used only for populated views.
func (a *Adapter) RefreshAll(ctx context.Context, concurrently bool) error {
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	if concurrently && !a.SupportsConcurrentRefresh() {
		return lifecycle.ConcurrentRefreshUnsupportedError(a.serverVersion)
	}

	rels, err := a.catalog.Relations(ctx)
	if err != nil {
		return err
	}
	populated := make(map[string]bool)
	var nodes []relation.Name
	for _, r := range rels {
		if r.Materialized {
			nodes = append(nodes, r.Name)
			populated[r.Name.Key()] = r.Populated
		}
	}

	edges, err := a.catalog.Dependencies(ctx, relation.KindMaterialized)
	if err != nil {
		return err
	}
	g := depgraph.New(nodes, edges)
	order, err := g.FullOrder()
	if err != nil {
		return err
	}

	bar := pb.Full.Start(len(order))
	bar.Set("prefix", "Refreshing materialized views: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, key := range order {
		n, _ := g.Name(key)
		if err = a.refresh(ctx, n, concurrently && populated[key]); err != nil {
			bar.Finish()
			return err
		}
		bar.Increment()
	}
	bar.Finish()

	a.report("%s materialized views have been refreshed",
		humanize.Comma(int64(len(order))))
	return nil
}

func (a *Adapter) materializedGraph(ctx context.Context) (*depgraph.Graph, error) {
	rels, err := a.catalog.Relations(ctx)
	if err != nil {
		return nil, err
	}
	var nodes []relation.Name
	for _, r := range rels {
		if r.Materialized {
			nodes = append(nodes, r.Name)
		}
	}
	edges, err := a.catalog.Dependencies(ctx, relation.KindMaterialized)
	if err != nil {
		return nil, err
	}
	return depgraph.New(nodes, edges), nil
}

func (a *Adapter) refresh(ctx context.Context, name relation.Name, concurrently bool) error {
	q := "REFRESH MATERIALIZED VIEW "
	if concurrently {
		q += "CONCURRENTLY "
	}
	q = fmt.Sprintf("%s%s", q, name.Qualified())
	slog.Info("Refreshing materialized view", "name", name.Key(),
		"concurrently", concurrently)
	return a.exec(ctx, q)
}
