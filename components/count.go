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
	"github.com/opendp/validator-go/base"
)

// Count is the record-count aggregation. When the input's per-column value
// domain is known, counting is a deterministic group-by-count over that
// domain and the output has one row per category; otherwise the output is a
// single scalar count.
type Count struct{}

// Name returns the node kind's identifier.
func (Count) Name() string {
	return "Count"
}

// PropagateProperty resolves the output row count from the input's category
// domain when it is known, and marks the output as aggregated. A count is
// never negative and always integral, regardless of the input's type.
func (c Count) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	out := dataProperty.Clone()

	if categories, err := out.KnownCategories(); err == nil {
		if categories.NumColumns() != 1 {
			return nil, base.Errorf(base.UnsupportedShape, "categories must contain only one column")
		}
		records := int64(categories.Lengths()[0])
		out.NumRecords = &records
	} else {
		records, columns := int64(1), int64(1)
		out.NumRecords = &records
		out.NumColumns = &columns
	}

	// Snapshot of the pre-aggregation state; sensitivity is later derived
	// against this, not against the count node's declared inputs.
	out.Aggregator = &base.AggregatorSnapshot{
		Component:  c,
		Properties: properties.Clone(),
	}

	columns, err := out.Columns()
	if err != nil {
		return nil, err
	}
	mins := make([]*int64, columns)
	maxes := make([]*int64, columns)
	for i := range mins {
		zero := int64(0)
		mins[i] = &zero
	}
	out.Nature = &base.NatureContinuous{Min: base.I64Nulls(mins), Max: base.I64Nulls(maxes)}
	out.DataType = base.I64

	return out, nil
}

// Names is not implemented: a count output does not inherit the input's
// column names.
func (Count) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "Count: column name derivation is not implemented")
}

// Expand materializes a statically known category domain as an explicit
// Literal argument, so downstream execution does not re-derive it. When the
// domain is unknown, or the categories argument is already wired, the
// expansion is a no-op.
func (c Count) Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	patch := base.NewPatch()
	if _, ok := component.Arguments["categories"]; ok {
		return patch, nil
	}

	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	categories, err := dataProperty.KnownCategories()
	if err != nil {
		// Nothing is statically known, leave the node as is.
		return patch, nil
	}
	if categories.NumColumns() != 1 {
		return nil, base.Errorf(base.UnsupportedShape, "categories must contain only one column")
	}
	value, err := categories.ColumnArray(0)
	if err != nil {
		return nil, err
	}

	categoriesID := maximumID + 1
	patch.Nodes[categoriesID] = newLiteral(value, component.Batch)
	patch.Releases[categoriesID] = value

	rewired := component.Clone()
	if rewired.Arguments == nil {
		rewired.Arguments = map[string]int64{}
	}
	rewired.Arguments["categories"] = categoriesID
	patch.Nodes[componentID] = rewired

	return patch, nil
}

// ComputeSensitivity derives the worst-case change of a count under a
// single-record perturbation. The norm order has no effect on a count's
// sensitivity and is ignored.
//
// With no categories or a single category and a known total, the count is
// mechanically determined and cannot move. With exactly two categories, a
// substitution moves at most one unit between the two bins and add/remove
// changes one bin by one, so every cell changes by at most 1 whether or not
// the total is known. With more than two categories, a substitution may move
// a unit from any bin to any other (one bin -1, another +1), while add/remove
// only ever changes one bin by 1.
func (Count) ComputeSensitivity(privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (*base.Array, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	if err := dataProperty.AssertNotAggregated(); err != nil {
		return nil, err
	}

	if _, ok := space.(base.KNorm); !ok {
		return nil, base.Errorf(base.UnsupportedSensitivitySpace, "Count sensitivity is only implemented for KNorm spaces, not %s", space)
	}
	if err := privacy.CheckNeighboring(); err != nil {
		return nil, err
	}

	// When categories are defined, a disjoint group-by query is performed.
	var categoriesLength *int
	if categories, err := dataProperty.KnownCategories(); err == nil {
		if lengths := categories.Lengths(); len(lengths) > 0 {
			categoriesLength = &lengths[0]
		}
	}
	recordsKnown := dataProperty.NumRecords != nil

	var sensitivity float64
	switch {
	case (categoriesLength == nil || *categoriesLength == 1) && recordsKnown:
		// The total determines the only cell.
		sensitivity = 0
	case categoriesLength == nil || *categoriesLength == 1:
		sensitivity = 1
	case *categoriesLength == 2:
		// The two cells are complementary, each moves by at most one.
		sensitivity = 1
	case privacy.Neighboring == base.Substitute:
		sensitivity = 2
	default:
		sensitivity = 1
	}

	if categoriesLength == nil {
		return base.F64Vector([]float64{sensitivity}), nil
	}
	columns, err := dataProperty.Columns()
	if err != nil {
		return nil, err
	}
	cells := make([]float64, *categoriesLength*int(columns))
	for i := range cells {
		cells[i] = sensitivity
	}
	return base.F64Matrix(cells, *categoriesLength, int(columns)), nil
}
