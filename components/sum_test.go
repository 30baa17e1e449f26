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

package components

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opendp/validator-go/base"
)

// boundedData builds the NodeProperties of a node consuming one numeric data
// argument clamped to [min, max] on every one of its two columns.
func boundedData(min, max float64, numRecords *int64) base.NodeProperties {
	return base.NodeProperties{"data": &base.Property{
		NumRecords: numRecords,
		NumColumns: int64Ptr(2),
		Nature: &base.NatureContinuous{
			Min: base.F64Nulls([]*float64{float64Ptr(min), float64Ptr(min)}),
			Max: base.F64Nulls([]*float64{float64Ptr(max), float64Ptr(max)}),
		},
		DataType: base.F64,
	}}
}

func TestSumPropagateKnownRecords(t *testing.T) {
	got, err := Sum{}.PropagateProperty(substitute, nil, boundedData(-1, 2, int64Ptr(10)))
	if err != nil {
		t.Fatalf("PropagateProperty returned error %v, want success", err)
	}
	if got.NumRecords == nil || *got.NumRecords != 1 {
		t.Errorf("sum output NumRecords = %v, want 1", got.NumRecords)
	}
	if got.Aggregator == nil || got.Aggregator.Component.Name() != "Sum" {
		t.Fatalf("sum output carries no Sum aggregator snapshot: %+v", got.Aggregator)
	}

	continuous, ok := got.Nature.(*base.NatureContinuous)
	if !ok {
		t.Fatalf("sum output nature is %T, want NatureContinuous", got.Nature)
	}
	for i := 0; i < 2; i++ {
		if min, known := continuous.Min.Float64At(i); !known || min != -10 {
			t.Errorf("column %d min = (%f, %t), want (-10, true)", i, min, known)
		}
		if max, known := continuous.Max.Float64At(i); !known || max != 20 {
			t.Errorf("column %d max = (%f, %t), want (20, true)", i, max, known)
		}
	}
}

func TestSumPropagateUnknownRecords(t *testing.T) {
	got, err := Sum{}.PropagateProperty(substitute, nil, boundedData(-1, 2, nil))
	if err != nil {
		t.Fatalf("PropagateProperty returned error %v, want success", err)
	}
	continuous, ok := got.Nature.(*base.NatureContinuous)
	if !ok {
		t.Fatalf("sum output nature is %T, want NatureContinuous", got.Nature)
	}
	for i := 0; i < 2; i++ {
		if _, known := continuous.Min.Float64At(i); known {
			t.Errorf("column %d has a known min without a known record count", i)
		}
		if _, known := continuous.Max.Float64At(i); known {
			t.Errorf("column %d has a known max without a known record count", i)
		}
	}
}

func TestSumPropagateFailures(t *testing.T) {
	for _, tc := range []struct {
		desc       string
		properties base.NodeProperties
		wantKind   base.ErrorKind
	}{
		{"missing data argument",
			base.NodeProperties{},
			base.MissingArgument},
		{"non-numeric data",
			base.NodeProperties{"data": &base.Property{NumColumns: int64Ptr(1), DataType: base.Str}},
			base.UnsupportedShape},
		{"bounds missing entirely",
			base.NodeProperties{"data": &base.Property{NumColumns: int64Ptr(1), DataType: base.F64}},
			base.UnsupportedShape},
		{"upper bound missing on one column",
			base.NodeProperties{"data": &base.Property{
				NumColumns: int64Ptr(1),
				Nature: &base.NatureContinuous{
					Min: base.F64Nulls([]*float64{float64Ptr(0)}),
					Max: base.F64Nulls([]*float64{nil}),
				},
				DataType: base.F64,
			}},
			base.UnsupportedShape},
	} {
		_, err := Sum{}.PropagateProperty(substitute, nil, tc.properties)
		if err == nil {
			t.Errorf("PropagateProperty: when %s got success, want %s error", tc.desc, tc.wantKind)
			continue
		}
		if kind, ok := base.KindOf(err); !ok || kind != tc.wantKind {
			t.Errorf("PropagateProperty: when %s got error kind %v (%v), want %s", tc.desc, kind, err, tc.wantKind)
		}
	}
}

func TestSumSensitivity(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		privacy *base.PrivacyDefinition
		want    *base.Array
	}{
		// A substitution moves one record's value between the bounds.
		{"substitute", substitute, base.F64Matrix([]float64{3, 3}, 1, 2)},
		// Adding or removing a record changes the sum by at most the larger
		// bound magnitude.
		{"add-remove", addRemove, base.F64Matrix([]float64{2, 2}, 1, 2)},
	} {
		got, err := Sum{}.ComputeSensitivity(tc.privacy, boundedData(-1, 2, nil), base.KNorm{K: 1})
		if err != nil {
			t.Errorf("ComputeSensitivity: when %s got error %v, want success", tc.desc, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ComputeSensitivity: when %s got diff (-want +got):\n%s", tc.desc, diff)
		}
	}
}

func TestSumSensitivityFailures(t *testing.T) {
	summed, err := Sum{}.PropagateProperty(substitute, nil, boundedData(-1, 2, int64Ptr(10)))
	if err != nil {
		t.Fatalf("Sum.PropagateProperty returned error %v, want success", err)
	}

	for _, tc := range []struct {
		desc       string
		properties base.NodeProperties
		space      base.SensitivitySpace
		wantKind   base.ErrorKind
	}{
		{"already aggregated input",
			base.NodeProperties{"data": summed}, base.KNorm{K: 1},
			base.AlreadyAggregated},
		{"unsupported sensitivity space",
			boundedData(-1, 2, nil), base.InfNorm{},
			base.UnsupportedSensitivitySpace},
		{"bounds missing",
			base.NodeProperties{"data": &base.Property{NumColumns: int64Ptr(1), DataType: base.F64}}, base.KNorm{K: 1},
			base.UnsupportedShape},
	} {
		_, err := Sum{}.ComputeSensitivity(substitute, tc.properties, tc.space)
		if err == nil {
			t.Errorf("ComputeSensitivity: when %s got success, want %s error", tc.desc, tc.wantKind)
			continue
		}
		if kind, ok := base.KindOf(err); !ok || kind != tc.wantKind {
			t.Errorf("ComputeSensitivity: when %s got error kind %v (%v), want %s", tc.desc, kind, err, tc.wantKind)
		}
	}
}
