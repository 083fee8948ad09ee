/*
Package ingest loads OS files into extent-mapped files.

File content is read fragment by fragment; each fragment is placed into an
allocated storage extent and appended to the target file's extent tree.
Loading is synchronous (the extent tree is single-writer), but progress is
broadcast per fragment, so observers like progress bars or indexers can
follow along.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package ingest

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'extents'
func tracer() tracing.Trace {
	return tracing.Select("extents")
}
