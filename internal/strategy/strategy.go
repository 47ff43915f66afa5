// Package strategy defines the narrow interface between the simulation
// engine and whatever produces trading signals, plus the adapters this
// repository ships.
package strategy

// Adapter supplies, for any bar index, an entry-eligibility signal and an
// exit-quality signal. Implementations must be deterministic for a given
// series: the engine may query any index at most once per run but relies
// on reruns producing identical values.
type Adapter interface {
	// Name identifies the adapter in results and reports.
	Name() string
	// EntrySignal returns the entry signal strength at the given bar.
	EntrySignal(index int) float64
	// ExitQuality returns the hold-quality signal at the given bar,
	// queried on periodic reassessment while a position is open. Its
	// scale is independent of EntrySignal's.
	ExitQuality(index int) float64
}
