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

package analysis

import "sync/atomic"

// IDAllocator tracks the highest node id handed out during one graph-build
// session. Ids stay unique and monotonic even if independent subgraphs are
// one day expanded concurrently, so allocation goes through compare-and-swap
// rather than a plain store.
type IDAllocator struct {
	current atomic.Int64
}

// NewIDAllocator returns an allocator whose floor is the highest id already
// present in the graph.
func NewIDAllocator(maximumID int64) *IDAllocator {
	a := &IDAllocator{}
	a.current.Store(maximumID)
	return a
}

// Current returns the highest id allocated so far.
func (a *IDAllocator) Current() int64 {
	return a.current.Load()
}

// Advance raises the allocator to id. Calls with an id at or below the
// current maximum are no-ops.
func (a *IDAllocator) Advance(id int64) {
	for {
		current := a.current.Load()
		if id <= current || a.current.CompareAndSwap(current, id) {
			return
		}
	}
}
