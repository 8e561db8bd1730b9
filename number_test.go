package discodex_test

import (
	"testing"

	"github.com/fwojciec/discodex"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	t.Parallel()

	t.Run("strips currency and unifies decimal separator", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "12.50", discodex.NormalizePrice("12,50 €"))
		assert.Equal(t, "9.99", discodex.NormalizePrice("$9.99"))
		assert.Equal(t, "120.00", discodex.NormalizePrice("£120.00"))
	})

	t.Run("handles non-breaking spaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1250.00", discodex.NormalizePrice("1250,00 €"))
	})

	t.Run("decodes entity-encoded input", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "12.50", discodex.NormalizePrice("12,50&nbsp;&euro;"))
	})

	t.Run("empty input yields empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, discodex.NormalizePrice(""))
	})
}

func TestNormalizeCount(t *testing.T) {
	t.Parallel()

	t.Run("removes grouping spaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "76309", discodex.NormalizeCount("76 309"))
	})

	t.Run("keeps separators as found", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1,234", discodex.NormalizeCount("1,234 copies"))
	})

	t.Run("empty input yields empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, discodex.NormalizeCount(""))
	})
}

func TestNormalizeRating(t *testing.T) {
	t.Parallel()

	t.Run("extracts decimal and unifies separator", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "4.46", discodex.NormalizeRating("4,46 / 5"))
		assert.Equal(t, "3.2", discodex.NormalizeRating("3.2 / 5"))
	})

	t.Run("no decimal present yields empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, discodex.NormalizeRating("5 stars"))
		assert.Empty(t, discodex.NormalizeRating(""))
	})
}
