//
// Copyright 2020 OpenDP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package base

import "testing"

func TestPatchCheck(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		patch   *Patch
		wantErr bool
	}{
		{"empty patch",
			NewPatch(),
			false},
		{"original node and fresh ids",
			&Patch{
				Nodes:    map[int64]*Component{5: {}, 11: {}},
				Releases: map[int64]Value{11: I64Vector([]int64{1})},
			},
			false},
		{"node id collides with existing ids",
			&Patch{Nodes: map[int64]*Component{7: {}}},
			true},
		{"release id collides with existing ids",
			&Patch{Releases: map[int64]Value{3: I64Vector([]int64{1})}},
			true},
		{"traversal names an id the patch does not define",
			&Patch{Traversal: []int64{11}},
			true},
	} {
		err := tc.patch.Check(5, 10)
		if (err != nil) != tc.wantErr {
			t.Errorf("Check: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
	}
}

func TestPatchMaxID(t *testing.T) {
	patch := &Patch{
		Nodes:    map[int64]*Component{5: {}, 11: {}},
		Releases: map[int64]Value{12: I64Vector([]int64{1})},
	}
	if got := patch.MaxID(10); got != 12 {
		t.Errorf("MaxID(10) = %d, want 12", got)
	}
	if got := NewPatch().MaxID(10); got != 10 {
		t.Errorf("MaxID(10) on empty patch = %d, want 10", got)
	}
}

func TestMaxNodeID(t *testing.T) {
	graph := map[int64]*Component{1: {}, 9: {}, 4: {}}
	if got := MaxNodeID(graph); got != 9 {
		t.Errorf("MaxNodeID = %d, want 9", got)
	}
	if got := MaxNodeID(nil); got != 0 {
		t.Errorf("MaxNodeID(nil) = %d, want 0", got)
	}
}

func TestComponentCloneIsIndependent(t *testing.T) {
	original := &Component{
		Variant:   fakeAggregator{},
		Arguments: map[string]int64{"data": 1},
		Batch:     2,
	}
	clone := original.Clone()
	clone.Arguments["categories"] = 7

	if _, ok := original.Arguments["categories"]; ok {
		t.Error("mutating the clone's arguments changed the original")
	}
	if clone.Batch != 2 || clone.Variant.Name() != "FakeAggregator" {
		t.Errorf("clone lost fields: batch %d, variant %s", clone.Batch, clone.Variant.Name())
	}
}

func TestCheckNeighboring(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		neighboring Neighboring
		wantErr     bool
	}{
		{"substitute", Substitute, false},
		{"add-remove", AddRemove, false},
		{"unrecognized", Neighboring(42), true},
	} {
		pd := &PrivacyDefinition{Neighboring: tc.neighboring}
		err := pd.CheckNeighboring()
		if (err != nil) != tc.wantErr {
			t.Errorf("CheckNeighboring: when %s for err got %v, want %t", tc.desc, err, tc.wantErr)
		}
		if err != nil {
			if kind, ok := KindOf(err); !ok || kind != UnsupportedNeighboringDefinition {
				t.Errorf("CheckNeighboring: when %s got kind %v, want UnsupportedNeighboringDefinition", tc.desc, kind)
			}
		}
	}
}

func TestJaggedLengthsAndColumnArray(t *testing.T) {
	jagged := StrJagged([][]string{{"A", "B", "C"}, {"X"}})
	if got := jagged.NumColumns(); got != 2 {
		t.Errorf("NumColumns = %d, want 2", got)
	}
	lengths := jagged.Lengths()
	if len(lengths) != 2 || lengths[0] != 3 || lengths[1] != 1 {
		t.Errorf("Lengths = %v, want [3 1]", lengths)
	}

	column, err := jagged.ColumnArray(0)
	if err != nil {
		t.Fatalf("ColumnArray(0) returned error %v, want success", err)
	}
	if column.DataType != Str || column.NumElements() != 3 {
		t.Errorf("ColumnArray(0) = %v-typed array of %d elements, want Str of 3", column.DataType, column.NumElements())
	}

	if _, err := jagged.ColumnArray(2); err == nil {
		t.Error("ColumnArray(2) succeeded, want out of range error")
	}
}
