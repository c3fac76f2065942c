package hull

import (
	"testing"

	"github.com/matzehuels/assetmap/pkg/graph"
)

func TestEngineTriggers(t *testing.T) {
	placed := map[string]graph.Rect{
		"a": {MaxX: 10, MaxY: 10},
		"b": {MinX: 100, MaxX: 110, MaxY: 10},
	}
	e := NewEngine(boxes(placed), DefaultOptions())

	var updates []Update
	unsubscribe := e.Subscribe(func(u Update) { updates = append(updates, u) })

	e.SetMembers([]Member{
		{ID: "a", Groups: []string{"PCI"}},
		{ID: "b", Groups: []string{"PCI", "GDPR"}},
	})
	if got := e.Render(); len(got) != 2 {
		t.Fatalf("Render() = %+v, want 2 regions", got)
	}

	if got := e.SetVisible("PCI", false); len(got) != 1 || got[0].GroupName != "GDPR" {
		t.Fatalf("after hiding PCI = %+v", got)
	}
	if e.Visible("PCI") || !e.Visible("GDPR") || !e.Visible("unknown") {
		t.Error("Visible() mismatch")
	}
	if got := e.SetVisible("PCI", true); len(got) != 2 {
		t.Fatalf("after showing PCI = %+v", got)
	}

	placed["b"] = graph.Rect{MinX: 500, MaxX: 510, MaxY: 10}
	moved := e.MoveSettled()
	var pci Region
	for _, r := range moved {
		if r.GroupName == "PCI" {
			pci = r
		}
	}
	if pci.Box.MaxX != 570 {
		t.Errorf("PCI after move = %+v, want MaxX 570", pci.Box)
	}

	want := []Trigger{TriggerMembers, TriggerInitial, TriggerVisibility, TriggerVisibility, TriggerMove}
	if len(updates) != len(want) {
		t.Fatalf("updates = %d, want %d", len(updates), len(want))
	}
	for i, u := range updates {
		if u.Trigger != want[i] {
			t.Errorf("update %d trigger = %s, want %s", i, u.Trigger, want[i])
		}
	}

	unsubscribe()
	e.MoveSettled()
	if len(updates) != len(want) {
		t.Errorf("observer called after unsubscribe")
	}
}

func TestEngineVisibilityDoesNotTouchMembers(t *testing.T) {
	members := []Member{{ID: "a", Groups: []string{"g"}}}
	e := NewEngine(boxes(map[string]graph.Rect{"a": {MaxX: 10, MaxY: 10}}), DefaultOptions())
	e.SetMembers(members)

	e.SetVisible("g", false)
	if len(e.Regions()) != 0 {
		t.Errorf("hidden group still has a region")
	}
	e.SetVisible("g", true)
	if len(e.Regions()) != 1 {
		t.Errorf("region not restored")
	}
	if members[0].ID != "a" || members[0].Groups[0] != "g" {
		t.Errorf("members mutated: %+v", members)
	}
}

func TestEngineFullReplacement(t *testing.T) {
	placed := map[string]graph.Rect{"a": {MaxX: 10, MaxY: 10}}
	e := NewEngine(boxes(placed), DefaultOptions())
	e.SetMembers([]Member{{ID: "a", Groups: []string{"g"}}})
	first := e.Render()

	delete(placed, "a")
	if got := e.MoveSettled(); len(got) != 0 {
		t.Errorf("stale region survived: %+v", got)
	}
	if len(first) != 1 {
		t.Errorf("earlier result mutated: %+v", first)
	}
}
