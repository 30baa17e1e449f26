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

import "fmt"

// Neighboring is an enum type. Its values are the recognized definitions of
// which two datasets count as adjacent for a differential-privacy guarantee.
type Neighboring int

// Recognized neighboring relations.
const (
	// Substitute: one record's value may change arbitrarily.
	Substitute Neighboring = iota
	// AddRemove: one record may be added or removed.
	AddRemove
)

var neighboringName = map[Neighboring]string{
	Substitute: "Substitute",
	AddRemove:  "AddRemove",
}

func (n Neighboring) String() string {
	if name, ok := neighboringName[n]; ok {
		return name
	}
	return fmt.Sprintf("Neighboring(%d)", int(n))
}

// PrivacyDefinition carries the parameters a graph is analyzed under.
type PrivacyDefinition struct {
	Neighboring Neighboring
}

// CheckNeighboring fails when the neighboring relation is not one of the two
// recognized values.
func (pd *PrivacyDefinition) CheckNeighboring() error {
	switch pd.Neighboring {
	case Substitute, AddRemove:
		return nil
	}
	return Errorf(UnsupportedNeighboringDefinition, `neighboring definition must be either "AddRemove" or "Substitute"`)
}

// PrivacyUsage is the privacy budget spent by one release.
type PrivacyUsage struct {
	Epsilon float64
	Delta   float64
}

// Accuracy is an error bound on a released value: with probability 1-Alpha,
// the released value is within Value of the exact one.
type Accuracy struct {
	Value float64
	Alpha float64
}
