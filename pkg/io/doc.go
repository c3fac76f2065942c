// Package io reads and writes business graphs and bounds files.
//
// Three encodings are supported and chosen by file extension:
//
//   - .json: the node-link format of [graph.WriteGraph]
//   - .yaml, .yml: the same structure in YAML
//   - .toml: nodes and edges as [[nodes]] and [[edges]] tables
//
// A YAML inventory looks like this:
//
//	nodes:
//	  - id: db-1
//	    title: Orders DB
//	    asset_type: Database
//	    systems: [Prod, Dev]
//	    groups: [PCI]
//	  - id: api-1
//	    systems: [Prod]
//	edges:
//	  - source: api-1
//	    target: db-1
//	    relation_type: READS_FROM
//
// # Import
//
// [ImportFile] and [Read] decode the graph, assign ids to edges that have
// none and validate identities. Generated edge ids are name-based UUIDs
// derived from the edge endpoints and relation type, so importing the same
// file twice yields the same ids.
//
// Dangling edge endpoints are not rejected here; projection drops them with
// a warning.
//
// # Bounds
//
// [ImportBounds] reads a [graph.Layout] (display id to rendered box) in any
// of the three encodings. It feeds the hull engine when rendering happens
// outside this process.
//
// [graph.WriteGraph]: github.com/matzehuels/assetmap/pkg/graph.WriteGraph
// [graph.Layout]: github.com/matzehuels/assetmap/pkg/graph.Layout
package io
