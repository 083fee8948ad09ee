/*
Package extents maps a logical byte stream onto physical storage extents.

Extent trees

A file is represented as an ordered sequence of extents, i.e. contiguous
regions of physical storage. The sequence is indexed by a balanced multiway
search tree keyed by cumulative logical offset: every node caches the total
byte length of each of its subtrees, so locating an arbitrary logical offset
is a single root-to-leaf descent. This is the classic layout of extent-based
file systems, where file content is scattered over storage in variable-sized
pieces and the logical order is reconstructed from the index.

The package supports reading an arbitrary logical range as a lazy view
(no byte copying), inserting new extents at an arbitrary logical offset,
removing a logical range, and best-effort coalescing of physically adjacent
extents. Reads never mutate the tree. Mutations rebalance top-down: full
nodes split before the descent enters them, underfull nodes are repaired
before a deletion visits them.

Performance characteristics differ from a flat slice of extents:

	Operation     |   Extent tree   |  Slice
	--------------+-----------------+--------
	Locate offset |   O(log n)      |   O(n)
	Read range    |   O(log n + k)  |   O(n)
	Insert        |   O(log n)      |   O(n)
	Remove range  |   O(log n + k)  |   O(n)

For files fragmented into many extents the tree has stable performance and
space characteristics.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package extents

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ExtentError is an error type for the extents module
type ExtentError string

func (e ExtentError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a logical position or range is
// outside of the current file size.
const ErrIndexOutOfBounds = ExtentError("index out of bounds")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ExtentError("illegal arguments")

// ErrInvariantViolated is flagged by the structural checker whenever the
// extent tree is found to be in an inconsistent state.
const ErrInvariantViolated = ExtentError("tree invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
