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

// Variant identifies one node kind out of the enumerated, closed-per-build
// set. Implementations are small immutable value types; the capability
// implementations of each kind live with the kind itself and are reached
// through dispatch.
type Variant interface {
	// Name returns the node kind's identifier, used in error messages and
	// the kind registry.
	Name() string
}

// Component is a single node of a computation graph: a node kind plus the
// wiring of its named arguments to upstream node ids.
type Component struct {
	Variant Variant
	// Arguments maps the argument names the kind consumes to upstream
	// node ids.
	Arguments map[string]int64
	// Batch groups nodes inserted by one expansion with the expansion that
	// created them.
	Batch int64
}

// Clone returns a copy of the component with its own argument map.
func (c *Component) Clone() *Component {
	out := &Component{Variant: c.Variant, Batch: c.Batch}
	if c.Arguments != nil {
		out.Arguments = make(map[string]int64, len(c.Arguments))
		for name, id := range c.Arguments {
			out.Arguments[name] = id
		}
	}
	return out
}

// Patch is the result of expanding a single node: nodes to insert or replace,
// properties already known for them, literal values to record as releases,
// and the dependency order in which inserted nodes must be analyzed. Patches
// are applied atomically by the walker; the graph stays append-only during an
// analysis pass except for the single node being expanded.
type Patch struct {
	Nodes      map[int64]*Component
	Properties map[int64]*Property
	Releases   map[int64]Value
	Traversal  []int64
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{
		Nodes:      make(map[int64]*Component),
		Properties: make(map[int64]*Property),
		Releases:   make(map[int64]Value),
	}
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return len(p.Nodes) == 0 && len(p.Properties) == 0 && len(p.Releases) == 0 && len(p.Traversal) == 0
}

// Check validates the id invariants of a patch produced by expanding the node
// at componentID when maximumID was the highest allocated id: every id must
// be the original node id or strictly greater than maximumID.
func (p *Patch) Check(componentID, maximumID int64) error {
	check := func(id int64) error {
		if id != componentID && id <= maximumID {
			return Errorf(UnsupportedShape, "expansion allocated id %d, which collides with existing ids (maximum id %d)", id, maximumID)
		}
		return nil
	}
	for id := range p.Nodes {
		if err := check(id); err != nil {
			return err
		}
	}
	for id := range p.Releases {
		if err := check(id); err != nil {
			return err
		}
	}
	for _, id := range p.Traversal {
		if _, ok := p.Nodes[id]; !ok {
			return Errorf(UnsupportedShape, "expansion traversal names id %d, which the patch does not define", id)
		}
	}
	return nil
}

// MaxID returns the highest id allocated after applying the patch, given the
// highest id allocated before it.
func (p *Patch) MaxID(current int64) int64 {
	max := current
	for id := range p.Nodes {
		if id > max {
			max = id
		}
	}
	for id := range p.Releases {
		if id > max {
			max = id
		}
	}
	return max
}

// MaxNodeID returns the highest node id present in a graph, or 0 when the
// graph is empty.
func MaxNodeID(graph map[int64]*Component) int64 {
	var max int64
	for id := range graph {
		if id > max {
			max = id
		}
	}
	return max
}
