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

// SensitivitySpace is the metric a sensitivity is requested in. Node kinds
// must fail explicitly for spaces they do not support rather than
// approximate.
type SensitivitySpace interface {
	sensitivitySpace()
	String() string
}

// KNorm is the L_k norm bound on the change of a node's output between
// neighboring datasets.
type KNorm struct {
	K int
}

func (KNorm) sensitivitySpace() {}

func (s KNorm) String() string {
	return fmt.Sprintf("KNorm(%d)", s.K)
}

// InfNorm is the L_∞ norm bound on the change of a node's output between
// neighboring datasets.
type InfNorm struct{}

func (InfNorm) sensitivitySpace() {}

func (InfNorm) String() string {
	return "InfNorm"
}
