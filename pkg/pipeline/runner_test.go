package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/projection"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := graph.WriteGraphFile(sampleGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	return path
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v, want defaults filled", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Input: writeSample(t), Formats: []string{"dot", "json"}}

	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v, want 3 nodes and 2 edges", result.Stats)
	}
	if result.Stats.InstanceCount != 4 {
		t.Errorf("InstanceCount = %d, want 4", result.Stats.InstanceCount)
	}
	if result.Stats.RegionCount != 1 {
		t.Errorf("RegionCount = %d, want 1", result.Stats.RegionCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should miss the artifact cache")
	}

	dot := string(result.Artifacts["dot"])
	for _, want := range []string{`subgraph "cluster_system_Prod"`, `subgraph "cluster_system_Dev"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot missing %s", want)
		}
	}

	var doc Document
	if err := json.Unmarshal(result.Artifacts["json"], &doc); err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	var hulls int
	for _, el := range doc.Elements {
		if el.Data.Hull {
			hulls++
			if el.Role != projection.RoleHull || el.Data.GroupName != "pci" {
				t.Errorf("hull element = %+v", el)
			}
		}
	}
	if hulls != 1 {
		t.Errorf("json document has %d hull elements, want 1", hulls)
	}
	if len(doc.Elements) != len(result.Elements)+1 {
		t.Errorf("document has %d elements, want %d", len(doc.Elements), len(result.Elements)+1)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(again.Artifacts["dot"]) != dot {
		t.Error("cached dot differs from rendered dot")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Input: writeSample(t), Formats: []string{"dot"}}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.RenderHit {
		t.Error("refresh should bypass the artifact cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	if _, err := r.Execute(ctx, Options{}); err == nil {
		t.Error("missing input should fail")
	}
	if _, err := r.Execute(ctx, Options{Input: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("missing file should fail")
	}
}

func TestExecuteGraphDanglingEdge(t *testing.T) {
	g := sampleGraph()
	g.Edges = append(g.Edges, graph.Edge{ID: "e3", SourceID: "A", TargetID: "ghost"})

	result, err := NewRunner(nil, nil, nil).ExecuteGraph(context.Background(), g, Options{Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("ExecuteGraph: %v", err)
	}
	if result.Stats.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", result.Stats.WarningCount)
	}
}

func TestProjectWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	g := sampleGraph()

	doc, hit, err := r.ProjectWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first projection should miss")
	}
	for _, el := range doc.Elements {
		if el.Data.Hull {
			t.Error("projection document should not contain hulls")
		}
	}

	cached, hit, err := r.ProjectWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second projection should hit")
	}
	if len(cached.Elements) != len(doc.Elements) {
		t.Errorf("cached document has %d elements, want %d", len(cached.Elements), len(doc.Elements))
	}

	_, hit, err = r.ProjectWithCacheInfo(ctx, g, Options{ConnectorRelation: "SAME_AS"})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("a different connector relation should miss")
	}
}

func TestRenderArtifactsUnsupported(t *testing.T) {
	doc := NewDocument(projection.Project(sampleGraph()).Elements(), nil, nil)
	if _, err := RenderArtifacts(context.Background(), doc, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("unsupported format should fail")
	}
}
