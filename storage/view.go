package storage

// View is a lazy, read-only composition of storage sub-ranges.
//
// A view does not copy bytes: it records which physical ranges it covers, in
// logical order. Views are values and may be composed freely once
// constructed; composition is associative and order-preserving.
type View struct {
	src   *Memory
	spans []Interval
}

// Len returns the number of bytes the view yields.
func (v View) Len() int {
	n := 0
	for _, span := range v.spans {
		n += span.Length()
	}
	return n
}

// IsEmpty reports whether the view yields no bytes.
func (v View) IsEmpty() bool {
	return v.Len() == 0
}

// Plus returns a new view yielding v's bytes followed by other's bytes.
//
// Both views must share the same backing storage; combining views over
// different stores is an internal consistency violation.
func (v View) Plus(other View) View {
	if len(other.spans) == 0 {
		return v
	}
	if len(v.spans) == 0 {
		return other
	}
	assert(v.src == other.src, "cannot combine views over different storage")
	spans := make([]Interval, 0, len(v.spans)+len(other.spans))
	spans = append(spans, v.spans...)
	spans = append(spans, other.spans...)
	return View{src: v.src, spans: spans}
}

// Each visits the view's byte segments in logical order.
//
// Segments are handed out without copying; callers must not modify them.
// Iteration stops at the first callback error and returns that error.
func (v View) Each(fn func(segment []byte) error) error {
	for _, span := range v.spans {
		if err := fn(v.src.data[span.Start():span.End()]); err != nil {
			return err
		}
	}
	return nil
}

// Bytes materializes the view into a single contiguous byte slice.
func (v View) Bytes() []byte {
	out := make([]byte, 0, v.Len())
	_ = v.Each(func(segment []byte) error {
		out = append(out, segment...)
		return nil
	})
	return out
}
