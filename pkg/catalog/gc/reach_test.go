package gc

import (
	"sort"
	"testing"
)

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestReachable(t *testing.T) {
	tests := []struct {
		name     string
		roots    []string
		outgoing map[string][]string
		want     []string
	}{
		{
			name:  "linear chain",
			roots: []string{"a"},
			outgoing: map[string][]string{
				"a": {"b"},
				"b": {"c"},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name:  "cycle terminates",
			roots: []string{"a"},
			outgoing: map[string][]string{
				"a": {"b"},
				"b": {"c"},
				"c": {"a"},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name:  "diamond visits once",
			roots: []string{"a"},
			outgoing: map[string][]string{
				"a": {"b", "c"},
				"b": {"d"},
				"c": {"d"},
			},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name:  "disconnected component excluded",
			roots: []string{"a"},
			outgoing: map[string][]string{
				"a": {"b"},
				"x": {"y"},
				"y": {"x"},
			},
			want: []string{"a", "b"},
		},
		{
			name:     "no roots",
			roots:    nil,
			outgoing: map[string][]string{"a": {"b"}},
			want:     []string{},
		},
		{
			name:  "duplicate roots collapse",
			roots: []string{"a", "a", "b"},
			outgoing: map[string][]string{
				"a": {"b"},
			},
			want: []string{"a", "b"},
		},
		{
			name:  "edges into unreachable nodes do not resurrect them",
			roots: []string{"a"},
			outgoing: map[string][]string{
				"x": {"a"},
			},
			want: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedKeys(Reachable(tt.roots, tt.outgoing))
			if len(got) != len(tt.want) {
				t.Fatalf("Reachable() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Reachable() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestReachable_OrderIndependent(t *testing.T) {
	// Same graph, roots in different orders: the reachable set must match.
	outgoing := map[string][]string{
		"a": {"c"},
		"b": {"c"},
		"c": {"d", "e"},
		"e": {"a"},
	}

	first := sortedKeys(Reachable([]string{"a", "b"}, outgoing))
	second := sortedKeys(Reachable([]string{"b", "a"}, outgoing))

	if len(first) != len(second) {
		t.Fatalf("reachable sets differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("reachable sets differ: %v vs %v", first, second)
		}
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		refs []string
		size int
		want int // number of batches
	}{
		{"empty", nil, 10, 0},
		{"single batch", []string{"a", "b"}, 10, 1},
		{"exact multiple", []string{"a", "b", "c", "d"}, 2, 2},
		{"remainder", []string{"a", "b", "c"}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := chunk(tt.refs, tt.size)
			if len(batches) != tt.want {
				t.Fatalf("chunk() produced %d batches, want %d", len(batches), tt.want)
			}
			total := 0
			for _, b := range batches {
				if len(b) > tt.size {
					t.Errorf("batch size %d exceeds limit %d", len(b), tt.size)
				}
				total += len(b)
			}
			if total != len(tt.refs) {
				t.Errorf("batches contain %d refs, want %d", total, len(tt.refs))
			}
		})
	}
}
