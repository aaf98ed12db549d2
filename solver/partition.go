// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

package solver

import (
	"log/slog"

	"github.com/myphysicslab/myphysicslab-sub011/collision"
	"github.com/myphysicslab/myphysicslab-sub011/rigidbody"
)

// partition groups records into connected components by shared body,
// for HYBRID mode (§4.6): "partition the graph of contacts by shared
// bodies; within each connected component + attached joints, solve
// simultaneously." This is a direct, renamed port of the union-find
// "simulation islands" algorithm (uf_find/uf_union/
// broad_collect_simulation_islands), adapted from 3D body-pair islands
// to 2D collision/joint islands.
func partition(records []*collision.Record) [][]*collision.Record {
	parent := map[*rigidbody.Polygon]*rigidbody.Polygon{}

	var find func(b *rigidbody.Polygon) *rigidbody.Polygon
	find = func(b *rigidbody.Polygon) *rigidbody.Polygon {
		p, ok := parent[b]
		if !ok {
			slog.Error("partition: body missing from union-find map")
			return b
		}
		if p == b {
			return b
		}
		root := find(p)
		parent[b] = root
		return root
	}
	union := func(x, y *rigidbody.Polygon) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[rx] = ry
		}
	}

	touch := func(b *rigidbody.Polygon) {
		if _, ok := parent[b]; !ok {
			parent[b] = b
		}
	}
	for _, r := range records {
		touch(r.PrimaryBody)
		touch(r.NormalBody)
	}
	for _, r := range records {
		if !r.PrimaryBody.IsFixed() && !r.NormalBody.IsFixed() {
			union(r.PrimaryBody, r.NormalBody)
		}
	}

	islands := map[*rigidbody.Polygon][]*collision.Record{}
	for _, r := range records {
		root := find(r.PrimaryBody)
		if r.PrimaryBody.IsFixed() {
			root = find(r.NormalBody)
		}
		islands[root] = append(islands[root], r)
	}

	out := make([][]*collision.Record, 0, len(islands))
	for _, group := range islands {
		out = append(out, group)
	}
	return out
}
