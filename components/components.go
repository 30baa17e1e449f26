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

// Package components contains the per-node analysis capabilities of every
// graph node kind, and the dispatch that routes a capability call to the
// concrete kind's implementation.
//
// The four capabilities are independent and partially implemented per kind:
// a kind's support for a capability is a type-level fact, checked by the
// registry, not a runtime string comparison. Dispatch on an unsupported
// capability fails with an error naming both the kind and the capability,
// never with a silent default: a silently skipped sensitivity or expansion
// step could produce an unsound privacy guarantee.
package components

import (
	"sort"

	log "github.com/golang/glog"
	"github.com/opendp/validator-go/base"
)

// Propagator derives the statistical property of a node's output from the
// properties of its inputs, without touching data.
type Propagator interface {
	base.Variant

	// PropagateProperty produces the output property given the active
	// privacy definition, any publicly known argument values, and the
	// properties of the node's inputs. Aggregating kinds must record an
	// aggregator snapshot on the output.
	PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error)

	// Names derives the output's column names. Kinds with no basis to name
	// their output columns fail this call.
	Names(properties base.NodeProperties) ([]string, error)
}

// Expandable rewrites a node into itself plus auxiliary constant nodes that
// materialize statically known metadata.
type Expandable interface {
	base.Variant

	// Expand returns a patch of nodes to insert, releases to record, and the
	// order in which inserted nodes must be analyzed. Every id in the patch
	// is either componentID or strictly greater than maximumID. A no-op
	// patch is a valid result: expansion is safe to attempt redundantly.
	Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error)
}

// Aggregator derives the worst-case change of a node's output under a
// single-record perturbation of its input.
type Aggregator interface {
	base.Variant

	// ComputeSensitivity returns one sensitivity value per output cell, in
	// the requested sensitivity space. It fails when the target input
	// property carries an aggregator snapshot, and for spaces the kind does
	// not support.
	ComputeSensitivity(privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (*base.Array, error)
}

// AccuracyConverter converts between an accuracy bound on a released value
// and the privacy budget needed to achieve it.
type AccuracyConverter interface {
	base.Variant

	AccuracyToPrivacyUsage(privacy *base.PrivacyDefinition, properties base.NodeProperties, accuracy *base.Accuracy) (*base.PrivacyUsage, error)
	PrivacyUsageToAccuracy(privacy *base.PrivacyDefinition, properties base.NodeProperties, usage *base.PrivacyUsage, alpha float64) (*base.Accuracy, error)
}

// Reporter produces disclosure records for released nodes. The reporting
// collaborator owns the record format; the core only supplies the node id,
// the node definition, its input properties, and the released value,
// unmodified.
type Reporter interface {
	base.Variant

	Summarize(nodeID int64, component *base.Component, properties base.NodeProperties, release base.Value) (any, error)
}

// PropagateProperty routes a property propagation call to the node kind's
// implementation.
func PropagateProperty(v base.Variant, privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	impl, ok := v.(Propagator)
	if !ok {
		return nil, base.Errorf(base.CapabilityNotImplemented, "%s: property propagation is not implemented", v.Name())
	}
	return impl.PropagateProperty(privacy, public, properties)
}

// Names routes a column name derivation call to the node kind's
// implementation.
func Names(v base.Variant, properties base.NodeProperties) ([]string, error) {
	impl, ok := v.(Propagator)
	if !ok {
		return nil, base.Errorf(base.CapabilityNotImplemented, "%s: column name derivation is not implemented", v.Name())
	}
	return impl.Names(properties)
}

// Expand routes an expansion call to the node kind's implementation.
func Expand(v base.Variant, privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	impl, ok := v.(Expandable)
	if !ok {
		return nil, base.Errorf(base.CapabilityNotImplemented, "%s: expansion is not implemented", v.Name())
	}
	return impl.Expand(privacy, component, properties, componentID, maximumID)
}

// ComputeSensitivity routes a sensitivity derivation call to the node kind's
// implementation.
func ComputeSensitivity(v base.Variant, privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (*base.Array, error) {
	impl, ok := v.(Aggregator)
	if !ok {
		return nil, base.Errorf(base.CapabilityNotImplemented, "%s: sensitivity is not implemented", v.Name())
	}
	return impl.ComputeSensitivity(privacy, properties, space)
}

// AccuracyToPrivacyUsage routes an accuracy conversion call to the node
// kind's implementation. The second return value is false when the kind does
// not support accuracy conversion; partial support across the kind set is
// expected and does not fail the analysis.
func AccuracyToPrivacyUsage(v base.Variant, privacy *base.PrivacyDefinition, properties base.NodeProperties, accuracy *base.Accuracy) (*base.PrivacyUsage, bool, error) {
	impl, ok := v.(AccuracyConverter)
	if !ok {
		return nil, false, nil
	}
	usage, err := impl.AccuracyToPrivacyUsage(privacy, properties, accuracy)
	return usage, true, err
}

// PrivacyUsageToAccuracy routes a privacy usage conversion call to the node
// kind's implementation. The second return value is false when the kind does
// not support accuracy conversion.
func PrivacyUsageToAccuracy(v base.Variant, privacy *base.PrivacyDefinition, properties base.NodeProperties, usage *base.PrivacyUsage, alpha float64) (*base.Accuracy, bool, error) {
	impl, ok := v.(AccuracyConverter)
	if !ok {
		return nil, false, nil
	}
	accuracy, err := impl.PrivacyUsageToAccuracy(privacy, properties, usage, alpha)
	return accuracy, true, err
}

// Summarize routes a disclosure report call to the node kind's
// implementation. The second return value is false when the kind does not
// support reporting.
func Summarize(v base.Variant, nodeID int64, component *base.Component, properties base.NodeProperties, release base.Value) (any, bool, error) {
	impl, ok := v.(Reporter)
	if !ok {
		return nil, false, nil
	}
	summary, err := impl.Summarize(nodeID, component, properties, release)
	return summary, true, err
}

// CanExpand reports whether the node kind supports expansion.
func CanExpand(v base.Variant) bool {
	_, ok := v.(Expandable)
	return ok
}

// CanComputeSensitivity reports whether the node kind supports sensitivity
// derivation.
func CanComputeSensitivity(v base.Variant) bool {
	_, ok := v.(Aggregator)
	return ok
}

// registry holds a canonical instance of every node kind in this build.
var registry = map[string]base.Variant{}

// register adds a node kind to the registry. Registering a kind that
// implements no capability, or registering the same name twice, is a
// programmer error and aborts startup.
func register(v base.Variant) {
	if _, ok := registry[v.Name()]; ok {
		log.Fatalf("node kind %q is registered twice", v.Name())
	}
	switch v.(type) {
	case Propagator, Expandable, Aggregator, AccuracyConverter, Reporter:
	default:
		log.Fatalf("node kind %q implements no analysis capability", v.Name())
	}
	registry[v.Name()] = v
}

func init() {
	register(Literal{})
	register(Count{})
	register(Sum{})
	register(DPCount{})
	register(LaplaceMechanism{})
	register(GaussianMechanism{})
	register(SimpleGeometricMechanism{})
}

// ByName returns the canonical instance of the named node kind.
func ByName(name string) (base.Variant, error) {
	v, ok := registry[name]
	if !ok {
		return nil, base.Errorf(base.CapabilityNotImplemented, "%s: unknown node kind", name)
	}
	return v, nil
}

// Kinds returns the names of every node kind in this build, sorted.
func Kinds() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
