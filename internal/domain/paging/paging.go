package paging

import (
	"errors"
	"math"
)

var ErrInvalidPage = errors.New("invalid page")

// Request is a zero-based page. Offset is Index*Size.
type Request struct {
	Index int
	Size  int
}

func (r Request) Offset() int {
	return r.Index * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// Normalize fills a missing size with defaultSize and clamps it to maxSize.
// A negative index or size is rejected, as is an index whose offset does not
// fit in an int.
func Normalize(index, size, defaultSize, maxSize int) (Request, error) {
	if index < 0 || size < 0 {
		return Request{}, ErrInvalidPage
	}
	if size == 0 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if size > 0 && index > math.MaxInt/size {
		return Request{}, ErrInvalidPage
	}
	return Request{Index: index, Size: size}, nil
}
