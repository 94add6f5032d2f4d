package sequencer

import (
	"log/slog"

	"hdr-sequencer/internal/hdr"
	"hdr-sequencer/internal/platform/metrics"
)

// LogDiagnostics routes hdr core events for one camera to slog and,
// when set, Prometheus.
type LogDiagnostics struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewLogDiagnostics returns diagnostics tagged with the camera id.
// m may be nil.
func NewLogDiagnostics(log *slog.Logger, m *metrics.Metrics, id CameraID) *LogDiagnostics {
	return &LogDiagnostics{
		log:     log.With(slog.String("camera_id", string(id))),
		metrics: m,
	}
}

// ExposureAdjusted implements hdr.Diagnostics.
func (d *LogDiagnostics) ExposureAdjusted(original, adjusted uint32, position uint8) {
	d.log.Warn("duplicate exposure, profile 1 value adjusted",
		slog.Uint64("exposure_us", uint64(original)),
		slog.Uint64("adjusted_us", uint64(adjusted)),
		slog.Int("index", int(position)))
	if d.metrics != nil {
		d.metrics.IncExposureAdjustments()
	}
}

// ProfileSwitched implements hdr.Diagnostics.
func (d *LogDiagnostics) ProfileSwitched(frame uint64, from, to hdr.ProfileID, position uint8, offset int64) {
	d.log.Info("profile switch",
		slog.Uint64("frame", frame),
		slog.Int("from", int(from)),
		slog.Int("to", int(to)),
		slog.Int("index", int(position)),
		slog.Int64("frame_offset", offset))
	if d.metrics != nil {
		d.metrics.IncProfileSwitches()
	}
}
