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

// Mechanism kinds share their analysis machinery: they consume an aggregated
// value, derive the aggregation's sensitivity from the aggregator snapshot on
// their input, and release a noised result. The noise sampling itself lives
// outside this core; mechanism kinds only analyze.

// snapshotSensitivity derives the sensitivity of the aggregation feeding a
// mechanism. The derivation runs against the pre-aggregation snapshot stored
// on the data property, not against the mechanism's declared inputs.
func snapshotSensitivity(privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (*base.Array, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	snapshot := dataProperty.Aggregator
	if snapshot == nil {
		return nil, base.Errorf(base.UnsupportedShape, "data: must be aggregated before a mechanism is applied")
	}
	return ComputeSensitivity(snapshot.Component, privacy, snapshot.Properties, space)
}

// propagateMechanism produces the output property of a mechanism: the
// aggregated input property with its aggregator snapshot cleared. A noised
// release ends the aggregation chain, so further aggregation downstream is a
// fresh decision.
func propagateMechanism(properties base.NodeProperties) (*base.Property, error) {
	dataProperty, err := properties.Get("data")
	if err != nil {
		return nil, err
	}
	if dataProperty.Aggregator == nil {
		return nil, base.Errorf(base.UnsupportedShape, "data: must be aggregated before a mechanism is applied")
	}
	out := dataProperty.Clone()
	out.Aggregator = nil
	return out, nil
}

// expandMechanism materializes the snapshot sensitivity as a Literal node
// wired to the mechanism's sensitivity argument. When the argument is already
// wired, the expansion is a no-op.
func expandMechanism(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64, space base.SensitivitySpace) (*base.Patch, error) {
	patch := base.NewPatch()
	if _, ok := component.Arguments["sensitivity"]; ok {
		return patch, nil
	}

	sensitivity, err := snapshotSensitivity(privacy, properties, space)
	if err != nil {
		return nil, err
	}

	sensitivityID := maximumID + 1
	patch.Nodes[sensitivityID] = newLiteral(sensitivity, component.Batch)
	patch.Releases[sensitivityID] = sensitivity

	rewired := component.Clone()
	if rewired.Arguments == nil {
		rewired.Arguments = map[string]int64{}
	}
	rewired.Arguments["sensitivity"] = sensitivityID
	patch.Nodes[componentID] = rewired

	return patch, nil
}
