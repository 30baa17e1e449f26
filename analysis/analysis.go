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

// Package analysis walks a computation graph in dependency order, deriving
// the statistical property of every node's output and applying expansion
// patches as it goes. It never executes a computation or touches data.
package analysis

import (
	"sort"

	"github.com/opendp/validator-go/base"
	"github.com/opendp/validator-go/components"
)

// ReleasedNode carries the four items handed, unmodified, to the reporting
// collaborator for one released node.
type ReleasedNode struct {
	ID         int64
	Component  *base.Component
	Properties base.NodeProperties
	Value      base.Value
}

// Result is the outcome of one analysis pass over a graph.
type Result struct {
	// Graph is the analyzed graph, including nodes inserted by expansions.
	Graph map[int64]*base.Component
	// Properties holds the derived output property of every node.
	Properties map[int64]*base.Property
	// Releases holds the released value of every node that has one,
	// including constants materialized by expansions.
	Releases map[int64]base.Value
	// Released lists the reporting records in id order.
	Released []ReleasedNode
}

// TopologicalOrder returns the graph's node ids in dependency order, failing
// when the graph is cyclic or wires an argument to a missing node. Ties are
// broken by id so the order is deterministic.
func TopologicalOrder(graph map[int64]*base.Component) ([]int64, error) {
	indegree := make(map[int64]int, len(graph))
	dependents := make(map[int64][]int64, len(graph))
	for id, node := range graph {
		indegree[id] += 0
		for name, argID := range node.Arguments {
			if _, ok := graph[argID]; !ok {
				return nil, base.Errorf(base.MissingArgument, "node %d: argument %q references missing node %d", id, name, argID)
			}
			indegree[id]++
			dependents[argID] = append(dependents[argID], id)
		}
	}

	ready := make([]int64, 0, len(graph))
	for id, degree := range indegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	order := make([]int64, 0, len(graph))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		next := dependents[id]
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		for _, dependent := range next {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	if len(order) != len(graph) {
		return nil, base.Errorf(base.UnsupportedShape, "computation graph is cyclic")
	}
	return order, nil
}

type walker struct {
	privacy    *base.PrivacyDefinition
	graph      map[int64]*base.Component
	releases   map[int64]base.Value
	properties map[int64]*base.Property
	released   []ReleasedNode
	alloc      *IDAllocator
	inProgress map[int64]bool
}

// Analyze runs one property propagation pass over the graph, expanding nodes
// whose kinds support it. The input maps are not modified; inserted nodes and
// recorded releases appear only in the result. Analysis aborts on the first
// failing node.
func Analyze(privacy *base.PrivacyDefinition, graph map[int64]*base.Component, releases map[int64]base.Value) (*Result, error) {
	w := &walker{
		privacy:    privacy,
		graph:      make(map[int64]*base.Component, len(graph)),
		releases:   make(map[int64]base.Value, len(releases)),
		properties: make(map[int64]*base.Property, len(graph)),
		inProgress: make(map[int64]bool),
	}
	for id, node := range graph {
		w.graph[id] = node.Clone()
	}
	for id, value := range releases {
		w.releases[id] = value
	}
	w.alloc = NewIDAllocator(base.MaxNodeID(w.graph))

	order, err := TopologicalOrder(w.graph)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		if err := w.analyze(id); err != nil {
			return nil, err
		}
	}

	sort.Slice(w.released, func(i, j int) bool { return w.released[i].ID < w.released[j].ID })
	return &Result{
		Graph:      w.graph,
		Properties: w.properties,
		Releases:   w.releases,
		Released:   w.released,
	}, nil
}

// analyze derives the property of one node, expanding it first when its kind
// supports expansion. Arguments are analyzed before their dependent; patches
// are validated and applied atomically.
func (w *walker) analyze(id int64) error {
	if _, done := w.properties[id]; done {
		return nil
	}
	if w.inProgress[id] {
		return base.Errorf(base.UnsupportedShape, "computation graph is cyclic at node %d", id)
	}
	w.inProgress[id] = true
	defer delete(w.inProgress, id)

	node := w.graph[id]
	if node == nil {
		return base.Errorf(base.MissingArgument, "node %d: missing from the computation graph", id)
	}

	// Expansion may rewire the node or replace its kind entirely (a DPCount
	// becomes a mechanism), so it is re-attempted on the rewired node until
	// it no-ops. Expansions are no-ops once their argument is wired, so this
	// terminates.
	inputs, public, err := w.gather(node)
	if err != nil {
		return err
	}
	for components.CanExpand(node.Variant) {
		maximumID := w.alloc.Current()
		patch, err := components.Expand(node.Variant, w.privacy, node, inputs, id, maximumID)
		if err != nil {
			return err
		}
		if patch.Empty() {
			break
		}
		if err := patch.Check(id, maximumID); err != nil {
			return err
		}
		w.alloc.Advance(patch.MaxID(maximumID))
		for patchID, patchNode := range patch.Nodes {
			w.graph[patchID] = patchNode
		}
		for patchID, value := range patch.Releases {
			w.releases[patchID] = value
		}
		for patchID, property := range patch.Properties {
			w.properties[patchID] = property
		}
		for _, traversalID := range patch.Traversal {
			if err := w.analyze(traversalID); err != nil {
				return err
			}
		}
		node = w.graph[id]
		inputs, public, err = w.gather(node)
		if err != nil {
			return err
		}
	}

	property, err := components.PropagateProperty(node.Variant, w.privacy, public, inputs)
	if err != nil {
		return err
	}
	w.properties[id] = property

	if value, ok := w.releases[id]; ok {
		w.released = append(w.released, ReleasedNode{
			ID:         id,
			Component:  node,
			Properties: inputs,
			Value:      value,
		})
	}
	return nil
}

// gather assembles a node's input properties and publicly known argument
// values, analyzing upstream nodes first where needed.
func (w *walker) gather(node *base.Component) (base.NodeProperties, map[string]base.Value, error) {
	inputs := make(base.NodeProperties, len(node.Arguments))
	public := make(map[string]base.Value)
	for name, argID := range node.Arguments {
		if _, done := w.properties[argID]; !done {
			if err := w.analyze(argID); err != nil {
				return nil, nil, err
			}
		}
		inputs[name] = w.properties[argID]
		if value, ok := w.releases[argID]; ok {
			public[name] = value
		}
	}
	return inputs, public, nil
}
