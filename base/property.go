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

// NullableVector holds one optional numeric scalar per column. A nil entry
// means the value is not statically known for that column.
type NullableVector struct {
	DataType DataType

	I64 []*int64
	F64 []*float64
}

// I64Nulls returns a NullableVector of optional integers.
func I64Nulls(values []*int64) *NullableVector {
	return &NullableVector{DataType: I64, I64: values}
}

// F64Nulls returns a NullableVector of optional floats.
func F64Nulls(values []*float64) *NullableVector {
	return &NullableVector{DataType: F64, F64: values}
}

// NumColumns returns the number of per-column entries held.
func (v *NullableVector) NumColumns() int {
	switch v.DataType {
	case I64:
		return len(v.I64)
	case F64:
		return len(v.F64)
	}
	return 0
}

// Float64At returns the value of column i as a float64. The second return
// value reports whether the value is known.
func (v *NullableVector) Float64At(i int) (float64, bool) {
	switch v.DataType {
	case I64:
		if i < len(v.I64) && v.I64[i] != nil {
			return float64(*v.I64[i]), true
		}
	case F64:
		if i < len(v.F64) && v.F64[i] != nil {
			return *v.F64[i], true
		}
	}
	return 0, false
}

func (v *NullableVector) clone() *NullableVector {
	if v == nil {
		return nil
	}
	out := &NullableVector{DataType: v.DataType}
	for _, p := range v.I64 {
		out.I64 = append(out.I64, cloneI64Ptr(p))
	}
	for _, p := range v.F64 {
		out.F64 = append(out.F64, cloneF64Ptr(p))
	}
	return out
}

func cloneI64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneF64Ptr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Nature describes what is known about the distribution of a column group:
// continuous values with optional per-column bounds, or categorical values.
type Nature interface {
	natureKind()
}

// NatureContinuous carries optional per-column lower and upper bounds.
type NatureContinuous struct {
	Min *NullableVector
	Max *NullableVector
}

func (*NatureContinuous) natureKind() {}

// NatureCategorical marks a column group as categorical.
type NatureCategorical struct{}

func (*NatureCategorical) natureKind() {}

func cloneNature(n Nature) Nature {
	switch nat := n.(type) {
	case *NatureContinuous:
		return &NatureContinuous{Min: nat.Min.clone(), Max: nat.Max.clone()}
	case *NatureCategorical:
		return &NatureCategorical{}
	}
	return nil
}

// AggregatorSnapshot records the state of an aggregation at the moment it
// happened: the aggregating node kind and a clone of its input properties.
// Sensitivity must be derived against this pre-aggregation state, so the
// snapshot stays valid even if the originating node is later modified or
// removed from the graph.
type AggregatorSnapshot struct {
	Component  Variant
	Properties NodeProperties
}

func (s *AggregatorSnapshot) clone() *AggregatorSnapshot {
	if s == nil {
		return nil
	}
	// Variants are immutable value types, copying the interface is enough.
	return &AggregatorSnapshot{Component: s.Component, Properties: s.Properties.Clone()}
}

// Property is the statistical metadata attached to a node's output, computed
// without touching actual data. Properties are never mutated after creation:
// propagation clones and extends its input, it never aliases it.
type Property struct {
	// NumRecords is the exact row count if statically known, else nil.
	NumRecords *int64
	// NumColumns is the exact column count if statically known, else nil.
	NumColumns *int64
	// Categories is the known finite per-column value domain, or nil when
	// unknown. Callers must branch via KnownCategories, never read this
	// field as an implicit "no categories".
	Categories *Jagged
	// Nature carries bounds when derivable, else nil.
	Nature Nature
	// DataType is the scalar type of the output.
	DataType DataType
	// Aggregator is set exactly when this property denotes an already
	// aggregated value. Deriving sensitivity on such a property is an error.
	Aggregator *AggregatorSnapshot
}

// KnownCategories returns the per-column value domain, or ErrUnknownCategories
// when it is not statically known.
func (p *Property) KnownCategories() (*Jagged, error) {
	if p.Categories == nil {
		return nil, ErrUnknownCategories
	}
	return p.Categories, nil
}

// Columns returns the number of columns, failing when it is not statically
// known.
func (p *Property) Columns() (int64, error) {
	if p.NumColumns == nil {
		return 0, Errorf(UnsupportedShape, "number of columns is not defined")
	}
	return *p.NumColumns, nil
}

// AssertNotAggregated fails when the property carries an aggregator snapshot.
// Sensitivity is only meaningful on raw, per-record data; aggregating twice
// without an intervening noise step is a graph-construction error upstream.
func (p *Property) AssertNotAggregated() error {
	if p.Aggregator != nil {
		return Errorf(AlreadyAggregated, "aggregated data may not be further analyzed for sensitivity")
	}
	return nil
}

// Clone returns a deep copy of the property.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	return &Property{
		NumRecords: cloneI64Ptr(p.NumRecords),
		NumColumns: cloneI64Ptr(p.NumColumns),
		Categories: p.Categories.clone(),
		Nature:     cloneNature(p.Nature),
		DataType:   p.DataType,
		Aggregator: p.Aggregator.clone(),
	}
}

// NodeProperties maps a node's argument names to the properties of the
// upstream nodes wired to them.
type NodeProperties map[string]*Property

// Get returns the property wired to the named argument, failing with a
// MissingArgument error naming the argument when it is absent.
func (p NodeProperties) Get(name string) (*Property, error) {
	prop, ok := p[name]
	if !ok {
		return nil, Errorf(MissingArgument, "%s: missing", name)
	}
	return prop, nil
}

// Clone returns a deep copy of the mapping and every property it holds.
func (p NodeProperties) Clone() NodeProperties {
	out := make(NodeProperties, len(p))
	for name, prop := range p {
		out[name] = prop.Clone()
	}
	return out
}
