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
	"github.com/opendp/validator-go/checks"
)

// SimpleGeometricMechanism releases an integer-valued aggregated value with
// two-sided geometric noise calibrated to the aggregation's L_1 sensitivity.
// It requires a pure-epsilon budget. Accuracy conversion is not supported for
// this kind.
type SimpleGeometricMechanism struct {
	PrivacyUsage base.PrivacyUsage
}

// Name returns the node kind's identifier.
func (SimpleGeometricMechanism) Name() string {
	return "SimpleGeometricMechanism"
}

// PropagateProperty passes the aggregated input property through with its
// aggregator snapshot cleared. The input must be integer valued.
func (m SimpleGeometricMechanism) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	if err := checks.CheckEpsilonStrict(m.PrivacyUsage.Epsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckNoDelta(m.PrivacyUsage.Delta); err != nil {
		return nil, err
	}
	out, err := propagateMechanism(properties)
	if err != nil {
		return nil, err
	}
	if out.DataType != base.I64 {
		return nil, base.Errorf(base.UnsupportedShape, "data: geometric noise is only defined over integer data, not %s", out.DataType)
	}
	return out, nil
}

// Names is not implemented.
func (SimpleGeometricMechanism) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "SimpleGeometricMechanism: column name derivation is not implemented")
}

// Expand materializes the aggregation's L_1 sensitivity as an explicit
// Literal argument.
func (m SimpleGeometricMechanism) Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	return expandMechanism(privacy, component, properties, componentID, maximumID, base.KNorm{K: 1})
}
