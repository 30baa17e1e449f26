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

// Package checks contains validations of privacy and accuracy parameters.
package checks

import (
	"fmt"
	"math"
)

const (
	epsilonName = "Epsilon"
	deltaName   = "Delta"
)

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckEpsilonStrict returns an error if ε is nonpositive or +∞.
func CheckEpsilonStrict(epsilon float64, name ...string) error {
	epsName, err := verifyName(epsilonName, name)
	if err != nil {
		return err
	}
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("%s is %f, must be strictly positive and finite", epsName, epsilon)
	}
	return nil
}

// CheckDelta returns an error if δ is negative or greater than or equal to 1.
func CheckDelta(delta float64, name ...string) error {
	delName, err := verifyName(deltaName, name)
	if err != nil {
		return err
	}
	if math.IsNaN(delta) {
		return fmt.Errorf("%s is %e, cannot be NaN", delName, delta)
	}
	if delta < 0 {
		return fmt.Errorf("%s is %e, cannot be negative", delName, delta)
	}
	if delta >= 1 {
		return fmt.Errorf("%s is %e, must be strictly less than 1", delName, delta)
	}
	return nil
}

// CheckDeltaStrict returns an error if δ is nonpositive or greater than or equal to 1.
func CheckDeltaStrict(delta float64, name ...string) error {
	delName, err := verifyName(deltaName, name)
	if err != nil {
		return err
	}
	if err := CheckDelta(delta, delName); err != nil {
		return err
	}
	if delta == 0 {
		return fmt.Errorf("%s is %e, must be strictly positive", delName, delta)
	}
	return nil
}

// CheckNoDelta returns an error if δ is non-zero.
func CheckNoDelta(delta float64, name ...string) error {
	delName, err := verifyName(deltaName, name)
	if err != nil {
		return err
	}
	if delta != 0 {
		return fmt.Errorf("%s is %e, must be 0", delName, delta)
	}
	return nil
}

// CheckAlpha returns an error if the supplied alpha is not between 0 and 1.
func CheckAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return fmt.Errorf("Alpha is %f, must be strictly between 0 and 1", alpha)
	}
	return nil
}

// CheckAccuracy returns an error if the supplied accuracy bound is
// nonpositive or not finite.
func CheckAccuracy(accuracy float64) error {
	if math.IsNaN(accuracy) || math.IsInf(accuracy, 0) || accuracy <= 0 {
		return fmt.Errorf("Accuracy is %f, must be strictly positive and finite", accuracy)
	}
	return nil
}
