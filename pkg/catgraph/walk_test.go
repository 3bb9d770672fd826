package catgraph

import (
	"reflect"
	"testing"
)

func collectWalk(adjacency map[string][]string, root string) []Item {
	var out []Item
	for item := range Walk(adjacency, root) {
		out = append(out, item)
	}
	return out
}

func TestWalkOrderAndLevels(t *testing.T) {
	adjacency := map[string][]string{
		"A": {"b", "C"}, // sibling order is case-insensitive
		"b": {"D"},
	}

	got := collectWalk(adjacency, "A")
	want := []Item{
		{Title: "b", Parent: "A", Levels: []int{0}},
		{Title: "D", Parent: "b", Levels: []int{0, 0}},
		{Title: "C", Parent: "A", Levels: []int{1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk = %+v, want %+v", got, want)
	}
}

func TestWalkTerminatesOnCycle(t *testing.T) {
	adjacency := map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}

	got := collectWalk(adjacency, "A")
	want := []Item{
		{Title: "B", Parent: "A", Levels: []int{0}},
		{Title: "A", Parent: "B", Levels: []int{0, 0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk = %+v, want %+v", got, want)
	}
}

func TestWalkDiamondVisitsPerPath(t *testing.T) {
	// a node reachable over two distinct paths appears once per path
	adjacency := map[string][]string{
		"R": {"A", "B"},
		"A": {"C"},
		"B": {"C"},
	}

	got := collectWalk(adjacency, "R")
	want := []Item{
		{Title: "A", Parent: "R", Levels: []int{0}},
		{Title: "C", Parent: "A", Levels: []int{0, 0}},
		{Title: "B", Parent: "R", Levels: []int{1}},
		{Title: "C", Parent: "B", Levels: []int{1, 0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk = %+v, want %+v", got, want)
	}
}

func TestWalkEmptyRoot(t *testing.T) {
	if got := collectWalk(map[string][]string{}, "missing"); got != nil {
		t.Errorf("Walk of unknown root = %+v, want empty", got)
	}
}

func TestWalkIsRestartable(t *testing.T) {
	adjacency := map[string][]string{"A": {"B", "C"}}
	seq := Walk(adjacency, "A")

	first := 0
	for range seq {
		first++
		break // abandon mid-way
	}
	second := 0
	for range seq {
		second++
	}
	if second != 2 {
		t.Errorf("restarted walk visited %d nodes, want 2", second)
	}
}

func TestCompareComponentsAligned(t *testing.T) {
	adjacency := map[string][]string{
		"Category:English": {"Category:Networking", "Category:Sound"},
		"Category:Čeština": {"Category:Networking (Čeština)"},
	}

	var got []Pair
	for p := range CompareComponents(adjacency, "Category:English", "Category:Čeština") {
		got = append(got, p)
	}

	if len(got) != 2 {
		t.Fatalf("got %d pairs, want 2: %+v", len(got), got)
	}
	if got[0].Left == nil || got[0].Right == nil {
		t.Fatalf("first pair should be matched, got %+v", got[0])
	}
	if got[0].Left.Title != "Category:Networking" || got[0].Right.Title != "Category:Networking (Čeština)" {
		t.Errorf("matched pair = %q / %q", got[0].Left.Title, got[0].Right.Title)
	}
	if got[1].Left == nil || got[1].Right != nil {
		t.Errorf("second pair should be left-only, got %+v", got[1])
	}
}

func TestCompareComponentsDeeperFirst(t *testing.T) {
	adjacency := map[string][]string{
		"Category:English":    {"Category:Networking"},
		"Category:Networking": {"Category:Wireless"},
		"Category:Čeština":    {"Category:Sound (Čeština)"},
	}

	var got []Pair
	for p := range CompareComponents(adjacency, "Category:English", "Category:Čeština") {
		got = append(got, p)
	}

	if len(got) != 3 {
		t.Fatalf("got %d pairs, want 3: %+v", len(got), got)
	}
	// at equal positions the deeper left item drains before the
	// shallower unmatched right item
	if got[1].Left == nil || got[1].Left.Title != "Category:Wireless" {
		t.Errorf("second pair = %+v, want left Category:Wireless", got[1])
	}
	if got[2].Right == nil || got[2].Right.Title != "Category:Sound (Čeština)" {
		t.Errorf("third pair = %+v, want right Category:Sound (Čeština)", got[2])
	}
}

func TestCompareComponentsBothEmpty(t *testing.T) {
	count := 0
	for range CompareComponents(map[string][]string{}, "a", "b") {
		count++
	}
	if count != 0 {
		t.Errorf("got %d pairs, want 0", count)
	}
}
