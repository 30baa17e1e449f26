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

	"github.com/opendp/validator-go/base"
)

// Sum is the per-column sum aggregation. Its sensitivity is only bounded when
// the input carries known per-column bounds, so inputs are expected to be
// clamped upstream.
type Sum struct{}

// Name returns the node kind's identifier.
func (Sum) Name() string {
	return "Sum"
}

// bounds returns the known per-column lower and upper bounds of a property,
// failing with an argument-qualified error when any bound is missing.
func sumBounds(property *base.Property) (mins, maxes []float64, err error) {
	continuous, ok := property.Nature.(*base.NatureContinuous)
	if !ok {
		return nil, nil, base.Errorf(base.UnsupportedShape, "data: bounds are missing")
	}
	columns, err := property.Columns()
	if err != nil {
		return nil, nil, err
	}
	mins = make([]float64, columns)
	maxes = make([]float64, columns)
	for i := int64(0); i < columns; i++ {
		min, minKnown := continuous.Min.Float64At(int(i))
		max, maxKnown := continuous.Max.Float64At(int(i))
		if !minKnown {
			return nil, nil, base.Errorf(base.UnsupportedShape, "data: lower bound is missing on column %d", i)
		}
		if !maxKnown {
			return nil, nil, base.Errorf(base.UnsupportedShape, "data: upper bound is missing on column %d", i)
		}
		mins[i], maxes[i] = min, max
	}
	return mins, maxes, nil
}

// PropagateProperty collapses the input to one record per column, scales the
// known bounds by the record count when it is known, and marks the output as
// aggregated.
func (s Sum) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	if dataProperty.DataType != base.I64 && dataProperty.DataType != base.F64 {
		return nil, base.Errorf(base.UnsupportedShape, "data: sums are only defined over numeric data, not %s", dataProperty.DataType)
	}
	mins, maxes, err := sumBounds(dataProperty)
	if err != nil {
		return nil, err
	}

	out := dataProperty.Clone()
	out.Aggregator = &base.AggregatorSnapshot{
		Component:  s,
		Properties: properties.Clone(),
	}

	records := int64(1)
	out.NumRecords = &records
	out.Categories = nil

	// The bounds on a sum of N bounded values are N*min and N*max; without a
	// known N there is no bound.
	outMins := make([]*float64, len(mins))
	outMaxes := make([]*float64, len(maxes))
	if dataProperty.NumRecords != nil {
		n := float64(*dataProperty.NumRecords)
		for i := range mins {
			min, max := n*mins[i], n*maxes[i]
			outMins[i], outMaxes[i] = &min, &max
		}
	}
	out.Nature = &base.NatureContinuous{Min: base.F64Nulls(outMins), Max: base.F64Nulls(outMaxes)}

	return out, nil
}

// Names is not implemented: a sum output does not inherit the input's column
// names.
func (Sum) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "Sum: column name derivation is not implemented")
}

// ComputeSensitivity derives the worst-case change of a per-column sum. A
// single-record perturbation changes one row, so the change vector has one
// nonzero coordinate per column and the norm order is irrelevant and ignored.
// Under Substitute a record's value may move between the bounds; under
// AddRemove a record at the extreme bound may appear or disappear.
func (Sum) ComputeSensitivity(privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (*base.Array, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	if err := dataProperty.AssertNotAggregated(); err != nil {
		return nil, err
	}
	if _, ok := space.(base.KNorm); !ok {
		return nil, base.Errorf(base.UnsupportedSensitivitySpace, "Sum sensitivity is only implemented for KNorm spaces, not %s", space)
	}
	if err := privacy.CheckNeighboring(); err != nil {
		return nil, err
	}

	mins, maxes, err := sumBounds(dataProperty)
	if err != nil {
		return nil, err
	}

	sensitivities := make([]float64, len(mins))
	for i := range sensitivities {
		switch privacy.Neighboring {
		case base.Substitute:
			sensitivities[i] = maxes[i] - mins[i]
		case base.AddRemove:
			sensitivities[i] = math.Max(math.Abs(mins[i]), math.Abs(maxes[i]))
		}
	}
	return base.F64Matrix(sensitivities, 1, len(sensitivities)), nil
}
