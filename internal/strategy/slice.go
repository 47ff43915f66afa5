package strategy

// SliceAdapter serves signals from precomputed slices. It backs
// externally driven strategies and deterministic tests.
type SliceAdapter struct {
	name    string
	entry   []float64
	quality []float64
}

// NewSliceAdapter creates an adapter over precomputed entry and
// exit-quality series. Out-of-range indexes read as zero.
func NewSliceAdapter(name string, entry []float64, quality []float64) *SliceAdapter {
	return &SliceAdapter{
		name:    name,
		entry:   entry,
		quality: quality,
	}
}

// Name implements Adapter.
func (a *SliceAdapter) Name() string {
	return a.name
}

// EntrySignal implements Adapter.
func (a *SliceAdapter) EntrySignal(index int) float64 {
	if index < 0 || index >= len(a.entry) {
		return 0
	}

	return a.entry[index]
}

// ExitQuality implements Adapter.
func (a *SliceAdapter) ExitQuality(index int) float64 {
	if index < 0 || index >= len(a.quality) {
		return 0
	}

	return a.quality[index]
}
