package domain

// AccuracyWindow is the coarsest modification time granularity observed so far, in milliseconds.
// It only ever narrows over the life of an orchestrator.
type AccuracyWindow int64

const (
	// DefaultAccuracyWindow is the window assumed before any timestamp has been observed.
	DefaultAccuracyWindow AccuracyWindow = 10000

	// FinestAccuracyWindow is the narrowest window the adaptation step can infer.
	FinestAccuracyWindow AccuracyWindow = 1
)

// Observe narrows the window using one observed modification time t.
// The result is never larger than w.
func (w AccuracyWindow) Observe(t int64) AccuracyWindow {
	switch {
	case w > 1 && t%10 != 0:
		return 1
	case w > 10 && t%100 != 0:
		return 10
	case w > 100 && t%1000 != 0:
		return 100
	case w > 1000 && t%10000 != 0:
		return 1000
	default:
		return w
	}
}

// Narrower returns the smaller of w and other.
func (w AccuracyWindow) Narrower(other AccuracyWindow) AccuracyWindow {
	return min(w, other)
}

// Valid reports whether w is one of the granularities the adaptation step produces.
func (w AccuracyWindow) Valid() bool {
	switch w {
	case 1, 10, 100, 1000, 10000:
		return true
	default:
		return false
	}
}

// Milliseconds returns the window as a plain integer.
func (w AccuracyWindow) Milliseconds() int64 {
	return int64(w)
}
