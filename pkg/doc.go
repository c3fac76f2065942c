// Package pkg provides the core libraries for assetmap graph projection.
//
// # Overview
//
// Assetmap turns a business graph of IT assets into the flat element list a
// node-link drawing surface renders. Systems become compound containers, an
// asset listed in several systems is drawn once per system with dashed
// connectors between its copies, and groups are drawn as padded hulls around
// their members.
//
// # Architecture
//
// The typical data flow:
//
//	Inventory file (JSON, YAML, TOML) or HTTP request
//	         ↓
//	    [io] package (decode, assign edge ids, validate)
//	         ↓
//	    [projection] package (compounds, instances, connectors, routed edges)
//	         ↓
//	    [hull] package (group regions from rendered boxes)
//	         ↓
//	    [render/nodelink] package (DOT, then SVG/PNG/PDF through Graphviz)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/assetmap/pkg/io"
//	    "github.com/matzehuels/assetmap/pkg/pipeline"
//	    "github.com/matzehuels/assetmap/pkg/projection"
//	    "github.com/matzehuels/assetmap/pkg/render/nodelink"
//	)
//
//	// 1. Load the business graph
//	g, _ := io.ImportFile("inventory.yaml")
//
//	// 2. Project it
//	res := projection.Project(g)
//
//	// 3. Compute hulls from position hints
//	regions := pipeline.NewHullEngine(res, pipeline.Options{}).Render()
//
//	// 4. Render to SVG
//	dot := nodelink.ToDOT(res.Elements(), nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//
// # Main Packages
//
// ## Domain
//
// [graph] - Business graph types (nodes, edges, position hints) and the
// geometry shared by the hull engine: boxes and rendered layouts.
//
// [projection] - The compound builder, instance projector and edge router.
// One call maps a business graph to compounds, per-system instances,
// connectors and routed edges, reporting skipped edges as warnings.
//
// [hull] - Group regions computed from live element boxes, and an engine that
// recomputes them on visibility, move and membership events.
//
// ## Rendering
//
// [render/nodelink] - Graphviz DOT with one cluster per system, rendered to SVG,
// PNG and PDF through go-graphviz.
//
// [render] - Output formats and external SVG conversion.
//
// ## Infrastructure
//
// [pipeline] - Load, project, hulls and render with caching, shared by the CLI
// and the HTTP API.
//
// [cache] - Cache interface with file, Redis and null backends plus key
// derivation.
//
// [config] - TOML settings file.
//
// [io] - Graph and bounds file import and export.
//
// [errors] - Coded errors with HTTP status and user message mapping.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/projection/...         # Specific package
//	go test -run Example                 # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/graph
// [projection]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/projection
// [hull]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/hull
// [render]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/buildinfo
package pkg
