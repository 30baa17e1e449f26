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

// DPCount is a convenience kind for a differentially private count. It never
// survives to execution: expansion rewrites it into a Count node feeding a
// SimpleGeometricMechanism node that reuses the original id, and each of
// those carries the rest of the analysis.
type DPCount struct {
	PrivacyUsage base.PrivacyUsage
}

// Name returns the node kind's identifier.
func (DPCount) Name() string {
	return "DPCount"
}

// Expand rewrites the node into its aggregation-plus-mechanism subgraph. The
// inserted Count node must be analyzed before the rewired node, so it is the
// patch traversal.
func (d DPCount) Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	dataID, ok := component.Arguments["data"]
	if !ok {
		return nil, base.Errorf(base.MissingArgument, "data: missing")
	}

	patch := base.NewPatch()
	countID := maximumID + 1
	patch.Nodes[countID] = &base.Component{
		Variant:   Count{},
		Arguments: map[string]int64{"data": dataID},
		Batch:     component.Batch,
	}
	patch.Nodes[componentID] = &base.Component{
		Variant:   SimpleGeometricMechanism{PrivacyUsage: d.PrivacyUsage},
		Arguments: map[string]int64{"data": countID},
		Batch:     component.Batch,
	}
	patch.Traversal = []int64{countID}

	return patch, nil
}
