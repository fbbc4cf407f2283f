package gcsnap

import (
	"testing"

	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

func TestCaptureStableAcrossRepeatedRuns(t *testing.T) {
	s, err := ecma.NewStore(64 * 1024)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	child := s.NewObject(ecma.TypeGeneral, jmem.NullPointer)
	root := s.NewObject(ecma.TypeGeneral, child)
	s.DefineDataProperty(root, ecma.Name{Kind: ecma.NameDirectString, Str: "x"}, ecma.Int(1), true, true, true)

	w := New(s)

	capture := func() []NodeEvent {
		var nodes []NodeEvent
		w.Capture(func(n NodeEvent) { nodes = append(nodes, n) }, func(EdgeEvent) {})
		return nodes
	}

	first := capture()
	second := capture()

	if len(first) != len(second) {
		t.Fatalf("expected stable node count across captures, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("capture %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCaptureEmitsPrototypeEdge(t *testing.T) {
	s, err := ecma.NewStore(64 * 1024)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	proto := s.NewObject(ecma.TypeGeneral, jmem.NullPointer)
	child := s.NewObject(ecma.TypeGeneral, proto)

	w := New(s)
	var edges []EdgeEvent
	w.Capture(func(NodeEvent) {}, func(e EdgeEvent) { edges = append(edges, e) })

	found := false
	for _, e := range edges {
		if e.ParentID == uint64(child) && e.ChildID == uint64(proto) && e.Kind == EdgePrototype {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a prototype edge from child to proto, got %+v", edges)
	}
}
