package indicators

// Window is a rolling mean over the last n float64 samples. It is used for
// derived series (like a moving average over ATR values) where the input is
// not a bar.
type Window struct {
	size    int
	samples []float64
}

// NewWindow creates a rolling mean over the given number of samples.
func NewWindow(size int) *Window {
	return &Window{
		size:    size,
		samples: make([]float64, 0, size),
	}
}

func (w *Window) Reset() {
	w.samples = w.samples[:0]
}

func (w *Window) Push(v float64) {
	w.samples = append(w.samples, v)
	// Keep only the last 'size' samples
	if len(w.samples) > w.size {
		w.samples = w.samples[1:]
	}
}

func (w *Window) Ready() bool {
	return len(w.samples) >= w.size
}

func (w *Window) Mean() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range w.samples {
		sum += v
	}
	return sum / float64(len(w.samples))
}
