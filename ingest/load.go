package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/extents"
	"github.com/npillmayer/extents/storage"
)

/*
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

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 1024000
	oneMb     = 1048576
)

// Progress reports one loaded fragment. Offset and Length describe the
// fragment's logical position, Loaded and Total the overall state of the
// load.
type Progress struct {
	Offset int
	Length int
	Loaded int
	Total  int
}

// Loader reads OS files into extent-mapped files, broadcasting a Progress
// event per loaded fragment. A loader is good for a single Load call;
// closing the broadcast ends all subscriptions.
type Loader struct {
	fragSize int
	cast     *caster.Caster // broadcaster for per-fragment progress
}

// NewLoader creates a loader with a recommended fragment size. A fragSize
// of 0 lets the loader pick a sensible default from the file size.
func NewLoader(fragSize int) *Loader {
	return &Loader{
		fragSize: fragSize,
		cast:     caster.New(nil),
	}
}

// Subscribe returns a channel of Progress events for the ongoing or
// upcoming load. The channel closes when the load finishes or ctx is done.
// ok is false when the loader has already shut down.
func (ld *Loader) Subscribe(ctx context.Context) (events <-chan interface{}, ok bool) {
	return ld.cast.Sub(ctx, 1)
}

// Load reads the named OS file and appends its content to file, reserving
// a storage extent per fragment from alloc. On return all subscriptions are
// closed; a partially loaded file keeps the fragments inserted so far.
func (ld *Loader) Load(name string, file *extents.File, alloc *storage.Allocator) error {
	defer ld.cast.Close()
	tf, err := openFile(name)
	if err != nil {
		return err
	}
	defer tf.file.Close()
	total := int(tf.info.Size())
	fragSize := ld.fragSize
	if fragSize <= 0 || fragSize > tenKb {
		fragSize = defaultFragSize(total)
	}
	if fragSize == 0 {
		return nil // empty file
	}
	tracer().Debugf("ingest: loading %q, %d bytes in fragments of %d", name, total, fragSize)
	buf := make([]byte, fragSize)
	loaded := 0
	for {
		n, rerr := tf.file.Read(buf)
		if n > 0 {
			iv, aerr := alloc.Alloc(n)
			if aerr != nil {
				return aerr
			}
			if ierr := file.Insert(file.Size(), []storage.Interval{iv}, buf[:n]); ierr != nil {
				return ierr
			}
			loaded += n
			ld.cast.Pub(Progress{Offset: loaded - n, Length: n, Loaded: loaded, Total: total})
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			tracer().Errorf("ingest: reading %q: %v", name, rerr)
			return rerr
		}
	}
	return nil
}

// osFile holds an OS file together with some useful information on it.
type osFile struct {
	path string
	info os.FileInfo
	file *os.File
}

// openFile opens an OS file for reading, checking for error conditions.
func openFile(name string) (*osFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file")
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &osFile{path: name, info: fi, file: file}, nil
}

// defaultFragSize picks a fragment length suited to the file size.
func defaultFragSize(total int) int {
	switch {
	case total < 64:
		return total
	case total < 1024:
		return 64
	case total < tenKb:
		return 256
	case total < hundredKb:
		return 512
	case total < oneMb:
		return twoKb
	default:
		return sixKb
	}
}
