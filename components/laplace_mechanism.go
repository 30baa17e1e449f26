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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// LaplaceMechanism releases an aggregated value with Laplace noise calibrated
// to the aggregation's L_1 sensitivity. It requires a pure-epsilon budget.
type LaplaceMechanism struct {
	PrivacyUsage base.PrivacyUsage
}

// Name returns the node kind's identifier.
func (LaplaceMechanism) Name() string {
	return "LaplaceMechanism"
}

// PropagateProperty passes the aggregated input property through with its
// aggregator snapshot cleared.
func (m LaplaceMechanism) PropagateProperty(privacy *base.PrivacyDefinition, public map[string]base.Value, properties base.NodeProperties) (*base.Property, error) {
	if err := checks.CheckEpsilonStrict(m.PrivacyUsage.Epsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckNoDelta(m.PrivacyUsage.Delta); err != nil {
		return nil, err
	}
	return propagateMechanism(properties)
}

// Names is not implemented.
func (LaplaceMechanism) Names(properties base.NodeProperties) ([]string, error) {
	return nil, base.Errorf(base.CapabilityNotImplemented, "LaplaceMechanism: column name derivation is not implemented")
}

// Expand materializes the aggregation's L_1 sensitivity as an explicit
// Literal argument.
func (m LaplaceMechanism) Expand(privacy *base.PrivacyDefinition, component *base.Component, properties base.NodeProperties, componentID, maximumID int64) (*base.Patch, error) {
	return expandMechanism(privacy, component, properties, componentID, maximumID, base.KNorm{K: 1})
}

// worstSensitivity is the largest per-cell sensitivity of the aggregation
// feeding the mechanism; budgets are calibrated against it.
func worstSensitivity(privacy *base.PrivacyDefinition, properties base.NodeProperties, space base.SensitivitySpace) (float64, error) {
	sensitivity, err := snapshotSensitivity(privacy, properties, space)
	if err != nil {
		return 0, err
	}
	if sensitivity.NumElements() == 0 {
		// An aggregation over an empty known domain has no cells; a
		// single-record perturbation cannot move anything.
		return 0, nil
	}
	return floats.Max(sensitivity.F64), nil
}

// AccuracyToPrivacyUsage returns the budget needed so that, with probability
// 1-Alpha, the released value is within accuracy.Value of the exact one.
func (m LaplaceMechanism) AccuracyToPrivacyUsage(privacy *base.PrivacyDefinition, properties base.NodeProperties, accuracy *base.Accuracy) (*base.PrivacyUsage, error) {
	if err := checks.CheckAccuracy(accuracy.Value); err != nil {
		return nil, err
	}
	if err := checks.CheckAlpha(accuracy.Alpha); err != nil {
		return nil, err
	}
	sensitivity, err := worstSensitivity(privacy, properties, base.KNorm{K: 1})
	if err != nil {
		return nil, err
	}
	if sensitivity == 0 {
		// The statistic cannot move between neighboring datasets, any
		// accuracy is achieved for free.
		return &base.PrivacyUsage{}, nil
	}
	// Quantile of the unit-scale Laplace distribution at 1-alpha/2; the
	// required scale and epsilon follow from accuracy = scale * quantile.
	quantile := distuv.Laplace{Mu: 0, Scale: 1}.Quantile(1 - accuracy.Alpha/2)
	scale := accuracy.Value / quantile
	return &base.PrivacyUsage{Epsilon: sensitivity / scale}, nil
}

// PrivacyUsageToAccuracy returns the accuracy achieved at the given budget:
// with probability 1-alpha, the released value is within the returned bound
// of the exact one.
func (m LaplaceMechanism) PrivacyUsageToAccuracy(privacy *base.PrivacyDefinition, properties base.NodeProperties, usage *base.PrivacyUsage, alpha float64) (*base.Accuracy, error) {
	if err := checks.CheckEpsilonStrict(usage.Epsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckAlpha(alpha); err != nil {
		return nil, err
	}
	sensitivity, err := worstSensitivity(privacy, properties, base.KNorm{K: 1})
	if err != nil {
		return nil, err
	}
	if sensitivity == 0 {
		return &base.Accuracy{Value: 0, Alpha: alpha}, nil
	}
	scale := sensitivity / usage.Epsilon
	value := distuv.Laplace{Mu: 0, Scale: scale}.Quantile(1 - alpha/2)
	return &base.Accuracy{Value: value, Alpha: alpha}, nil
}
