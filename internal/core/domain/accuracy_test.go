package domain_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hoard/internal/core/domain"
)

func TestAccuracyWindow_Observe(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.AccuracyWindow
		mtime    int64
		expected domain.AccuracyWindow
	}{
		{"millisecond precision", 10000, 1_700_000_000_123, 1},
		{"centisecond precision", 10000, 1_700_000_000_120, 10},
		{"decisecond precision", 10000, 1_700_000_000_100, 100},
		{"second precision", 10000, 1_700_000_001_000, 1000},
		{"ten second multiple keeps window", 10000, 1_700_000_010_000, 10000},
		{"already fine", 1, 1_700_000_000_123, 1},
		{"narrow window ignores coarse mtime", 10, 1_700_000_010_000, 10},
		{"window 10 narrows on odd millisecond", 10, 1_700_000_000_007, 1},
		{"window 100 narrows to 10", 100, 1_700_000_000_050, 10},
		{"zero mtime", 10000, 0, 10000},
		{"negative mtime", 10000, -1_500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.window.Observe(tt.mtime))
		})
	}
}

func TestAccuracyWindow_ObserveIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for range 200 {
		w := domain.DefaultAccuracyWindow
		for range 50 {
			// Bias toward round numbers so every branch is reached.
			mtime := rng.Int64N(1_000_000) * []int64{1, 10, 100, 1000, 10000}[rng.IntN(5)]
			next := w.Observe(mtime)
			assert.LessOrEqual(t, next, w)
			assert.True(t, next.Valid())
			w = next
		}
	}
}

func TestAccuracyWindow_ObserveOrderIndependent(t *testing.T) {
	mtimes := []int64{1_700_000_010_000, 1_700_000_001_000, 1_700_000_000_120, 1_700_000_000_100}

	forward := domain.DefaultAccuracyWindow
	for _, m := range mtimes {
		forward = forward.Observe(m)
	}

	backward := domain.DefaultAccuracyWindow
	for i := len(mtimes) - 1; i >= 0; i-- {
		backward = backward.Observe(mtimes[i])
	}

	assert.Equal(t, domain.AccuracyWindow(10), forward)
	assert.Equal(t, forward, backward)
}

func TestAccuracyWindow_Valid(t *testing.T) {
	for _, w := range []domain.AccuracyWindow{1, 10, 100, 1000, 10000} {
		assert.True(t, w.Valid(), w)
	}
	for _, w := range []domain.AccuracyWindow{0, 2, 50, 100000, -10} {
		assert.False(t, w.Valid(), w)
	}
}

func TestAccuracyWindow_Narrower(t *testing.T) {
	assert.Equal(t, domain.AccuracyWindow(10), domain.AccuracyWindow(100).Narrower(10))
	assert.Equal(t, domain.AccuracyWindow(10), domain.AccuracyWindow(10).Narrower(1000))
}
