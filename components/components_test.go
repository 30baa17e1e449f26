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
	"math"
	"testing"

	"github.com/opendp/validator-go/base"
)

// This file contains values and helpers shared by the component tests.

var (
	ln3        = math.Log(3)
	substitute = &base.PrivacyDefinition{Neighboring: base.Substitute}
	addRemove  = &base.PrivacyDefinition{Neighboring: base.AddRemove}
)

func int64Ptr(v int64) *int64 {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

// stringCategories builds a single-column category domain of the given size.
func stringCategories(size int) *base.Jagged {
	column := make([]string, size)
	for i := range column {
		column[i] = string(rune('A' + i))
	}
	return base.StrJagged([][]string{column})
}

// rawDataProperties builds the NodeProperties of a node consuming one
// un-aggregated data argument with the given category domain (nil when
// unknown) and record count (nil when unknown).
func rawDataProperties(categories *base.Jagged, numRecords *int64) base.NodeProperties {
	return base.NodeProperties{"data": &base.Property{
		NumRecords: numRecords,
		NumColumns: int64Ptr(1),
		Categories: categories,
		DataType:   base.Str,
	}}
}

// countedProperties runs Count's propagation over the given raw data
// properties and wires the aggregated output as the data argument of a
// downstream node.
func countedProperties(t *testing.T, raw base.NodeProperties) base.NodeProperties {
	t.Helper()
	counted, err := Count{}.PropagateProperty(substitute, nil, raw)
	if err != nil {
		t.Fatalf("Count.PropagateProperty returned error %v, want success", err)
	}
	return base.NodeProperties{"data": counted}
}

// wantKind fails the test unless err carries the wanted analysis error kind.
func wantKind(t *testing.T, err error, want base.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got success, want %s error", want)
	}
	kind, ok := base.KindOf(err)
	if !ok {
		t.Fatalf("got error %v with no analysis kind, want %s", err, want)
	}
	if kind != want {
		t.Fatalf("got error kind %s (%v), want %s", kind, err, want)
	}
}
