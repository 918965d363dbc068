package generic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetPool(t *testing.T) {
	p := NewResetPool(
		func() *[]int { s := make([]int, 0, 8); return &s },
		func(s *[]int) *[]int { *s = (*s)[:0]; return s },
	)

	buf := p.Get()
	*buf = append(*buf, 1, 2, 3)
	p.Put(buf)

	// sync.Pool may or may not hand back the same buffer; either way it is empty.
	again := p.Get()
	require.Empty(t, *again)
	require.NotNil(t, again)
}
