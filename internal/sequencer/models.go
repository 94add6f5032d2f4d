package sequencer

import (
	"time"

	"hdr-sequencer/internal/hdr"

	"github.com/google/uuid"
)

// CameraID uniquely identifies a capture source.
type CameraID string

// Configuration is the exposure setup a camera was last configured with.
type Configuration struct {
	ID           uuid.UUID `json:"config_id"`
	Profile0     []uint32  `json:"profile0"`
	Profile1     []uint32  `json:"profile1"`
	Adjusted0    []uint32  `json:"adjusted_profile0"`
	Adjusted1    []uint32  `json:"adjusted_profile1"`
	ConfiguredAt time.Time `json:"configured_at"`
}

// CameraState holds all in-memory state for one camera.
// Tracker is nil until the camera is configured.
type CameraState struct {
	ID       CameraID
	Config   Configuration
	Tracker  *hdr.Tracker
	Switcher hdr.Switcher
}

// Snapshot is a read-only view of a camera's sequencing state.
type Snapshot struct {
	CameraID       CameraID         `json:"camera_id"`
	ConfigID       uuid.UUID        `json:"config_id"`
	CurrentProfile int              `json:"current_profile"`
	WindowSizes    [2]int           `json:"window_sizes"`
	Switching      bool             `json:"switching"`
	Tracker        hdr.TrackerState `json:"tracker"`
}

// FrameResult is the outcome of processing one frame.
// SignalProfile is set when a profile switch signal should be sent to the
// camera before the next capture.
type FrameResult struct {
	hdr.Metadata
	SignalProfile *hdr.ProfileID `json:"signal_profile,omitempty"`
}

// ConfigureRequest is the input JSON payload for configuring a camera. Each
// profile is given either as a list of exposures or as a sequencer string
// ("exposure[:gain],...").
type ConfigureRequest struct {
	Profile0  []uint32 `json:"profile0,omitempty"`
	Profile1  []uint32 `json:"profile1,omitempty"`
	Sequence0 string   `json:"sequence0,omitempty"`
	Sequence1 string   `json:"sequence1,omitempty"`
}

// FrameRequest is the input JSON payload for processing a frame.
type FrameRequest struct {
	FrameNumber uint64 `json:"frame_number"`
	ExposureUs  uint32 `json:"exposure_us"`
}

// SwitchRequest is the input JSON payload for requesting a profile switch.
// Retries <= 0 selects the service default.
type SwitchRequest struct {
	Profile *hdr.ProfileID `json:"profile"`
	Retries int            `json:"retries"`
}
