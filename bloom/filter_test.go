package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/discodex/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddIfNew(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.0001)

	assert.True(t, f.AddIfNew("https://www.discogs.com/release/1"))
	assert.False(t, f.AddIfNew("https://www.discogs.com/release/1"))
	assert.True(t, f.AddIfNew("https://www.discogs.com/release/2"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.0001)
	for i := 0; i < 500; i++ {
		f.AddIfNew(fmt.Sprintf("https://www.discogs.com/release/%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 500, float64(count), 25)
}
