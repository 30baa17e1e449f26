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

// GaussianMechanism releases an aggregated value with Gaussian noise
// calibrated to the aggregation's L_2 sensitivity. It requires a strictly
// positive delta. Accuracy conversion is not supported for this kind.
type GaussianMechanism struct {
	PrivacyUsage base.PrivacyUsage
}

// Name returns the node kind's identifier.
func (GaussianMechanism) Name() string {
	return "GaussianMechanism"
}

// PropagateProperty passes the aggregated input property through with its
// aggregator snapshot cleared.
func (m GaussianMechanism) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	if err := checks.CheckEpsilonStrict(m.PrivacyUsage.Epsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckDeltaStrict(m.PrivacyUsage.Delta); err != nil {
		return nil, err
	}
	return propagateMechanism(properties)
}

// Names is not implemented.
func (GaussianMechanism) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "GaussianMechanism: column name derivation is not implemented")
}

// Expand materializes the aggregation's L_2 sensitivity as an explicit
// Literal argument.
func (m GaussianMechanism) Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	return expandMechanism(privacy, component, properties, componentID, maximumID, base.KNorm{K: 2})
}
