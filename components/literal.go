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

import "github.com/opendp/validator-go/base"

// Literal is a constant node holding a publicly known value. Expansions
// insert Literal nodes to materialize metadata that analysis has shown to be
// statically known, recording the value as a release.
type Literal struct {
	Value base.Value
}

// Name returns the node kind's identifier.
func (Literal) Name() string {
	return "Literal"
}

// PropagateProperty derives a property directly from the held value.
func (l Literal) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	switch value := l.Value.(type) {
	case *base.Array:
		records := int64(1)
		columns := int64(1)
		if len(value.Shape) > 0 {
			records = int64(value.Shape[0])
		}
		if len(value.Shape) > 1 {
			columns = int64(value.Shape[1])
		}
		return &base.Property{
			NumRecords: &records,
			NumColumns: &columns,
			DataType:   value.DataType,
		}, nil
	case *base.Jagged:
		columns := int64(value.NumColumns())
		return &base.Property{
			NumColumns: &columns,
			Categories: value,
			Nature:     &base.NatureCategorical{},
			DataType:   value.DataType,
		}, nil
	}
	return nil, base.Errorf(base.UnsupportedShape, "literal value is missing or has an unknown representation")
}

// Names is not implemented: a literal carries no column names.
func (Literal) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "Literal: column name derivation is not implemented")
}

// newLiteral returns a Literal component holding its own copy of value,
// attributed to the given expansion batch. The copy keeps the node's constant
// independent of the release recorded under the same id.
func newLiteral(value base.Value, batch int64) *base.Component {
	return &base.Component{
		Variant:   Literal{Value: base.CloneValue(value)},
		Arguments: map[string]int64{},
		Batch:     batch,
	}
}
