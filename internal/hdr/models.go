package hdr

// ProfileID selects one of the two configured HDR exposure sequences.
type ProfileID uint8

const (
	Profile0 ProfileID = 0
	Profile1 ProfileID = 1
)

// profileCount is fixed: the camera sequencer exposes exactly two profiles.
const profileCount = 2

// maxWindowSize bounds a profile's length so positions fit the 8-bit record fields.
const maxWindowSize = 255

// Valid reports whether p names one of the two profiles.
func (p ProfileID) Valid() bool {
	return p < profileCount
}

// Entry is what a registered exposure value resolves to.
type Entry struct {
	Profile  ProfileID
	Position uint8
}

// Profile is one configured exposure sequence. The window size is the length
// of the list; an unconfigured profile has window size 0.
type Profile struct {
	Exposures []uint32
}

// WindowSize returns the number of exposures in one bracket of p.
func (p Profile) WindowSize() int {
	return len(p.Exposures)
}

// Metadata is the per-frame result handed to downstream consumers.
// Field order matches the packed wire layout (see MarshalBinary).
type Metadata struct {
	MasterSequence uint64    `json:"master_sequence"`
	ExposureValue  uint32    `json:"exposure_us"`
	ExposureIndex  uint8     `json:"exposure_index"`
	ExposureCount  uint8     `json:"exposure_count"`
	Profile        ProfileID `json:"profile"`
}

// TrackerState is a copy of a Tracker's mutable state.
type TrackerState struct {
	Started      bool      `json:"started"`
	LastFrame    uint64    `json:"last_frame"`
	LastProfile  ProfileID `json:"last_profile"`
	LastPosition uint8     `json:"last_position"`
	FrameOffset  int64     `json:"frame_offset"`
}
