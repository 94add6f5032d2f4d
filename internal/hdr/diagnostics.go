package hdr

// Diagnostics receives notable events from the registry and tracker.
// Implementations must not call back into the emitting Registry or Tracker.
type Diagnostics interface {
	// ExposureAdjusted reports that profile 1's exposure at position was moved
	// from original to adjusted because profile 0 already uses original.
	ExposureAdjusted(original, adjusted uint32, position uint8)

	// ProfileSwitched reports a frame offset recomputation.
	ProfileSwitched(frame uint64, from, to ProfileID, position uint8, offset int64)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) ExposureAdjusted(uint32, uint32, uint8) {}

func (NopDiagnostics) ProfileSwitched(uint64, ProfileID, ProfileID, uint8, int64) {}

func diagnosticsOrNop(d Diagnostics) Diagnostics {
	if d == nil {
		return NopDiagnostics{}
	}
	return d
}
