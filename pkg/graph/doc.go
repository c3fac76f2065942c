// Package graph provides the business graph types for assetmap.
//
// The business graph is the canonical asset/relationship graph: nodes are IT
// assets and edges are typed relationships between them. It is independent of
// any visual representation; [projection] turns it into renderable elements.
//
// # Core Types
//
//   - [Graph]: Node and edge lists as received from the query layer
//   - [Node]: An asset with its systems (containment contexts) and groups
//     (cross-cutting tags)
//   - [Edge]: A typed relationship between two business node ids
//   - [Rect], [Layout]: Rendered element extents reported by a drawing surface
//
// # Multi-membership
//
// A node may belong to zero, one or many systems at the same time. Systems and
// groups are ordered sets: [Node.SystemSet] and [Node.GroupSet] return them
// trimmed, without blanks and without duplicates, in first-seen order. Every
// consumer relies on that order for deterministic output.
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "db-1", "title": "Orders DB", "systems": ["Prod", "Dev"], "groups": ["PCI"]},
//	    {"id": "api-1", "systems": ["Prod"]}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "api-1", "target": "db-1", "relation_type": "READS_FROM"}
//	  ]
//	}
//
// Use [ReadGraph]/[WriteGraph] for JSON. YAML and TOML live in pkg/io.
//
// [projection]: github.com/matzehuels/assetmap/pkg/projection
package graph
