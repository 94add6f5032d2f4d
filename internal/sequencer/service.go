package sequencer

import (
	"errors"
	"fmt"
	"log/slog"

	"hdr-sequencer/internal/hdr"
	"hdr-sequencer/internal/platform/metrics"
)

// DefaultSwitchRetries is how many frames a switch signal is repeated for
// when the request does not say.
const DefaultSwitchRetries = 1

// ErrInvalidConfiguration is returned when a configure request is malformed.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Service applies request-level rules (sequence parsing, switch defaults,
// diagnostics and metrics) and delegates state to the Repository.
type Service struct {
	repo          Repository
	log           *slog.Logger
	metrics       *metrics.Metrics
	switchRetries int
}

// NewService returns a Service on top of repo. m may be nil to disable
// metrics. If switchRetries <= 0, DefaultSwitchRetries is used.
func NewService(repo Repository, log *slog.Logger, m *metrics.Metrics, switchRetries int) *Service {
	if switchRetries <= 0 {
		switchRetries = DefaultSwitchRetries
	}
	return &Service{repo: repo, log: log, metrics: m, switchRetries: switchRetries}
}

// Configure (re)configures the camera's two exposure profiles and returns the
// configuration, whose adjusted lists must be programmed into the camera.
func (s *Service) Configure(id CameraID, req ConfigureRequest) (Configuration, error) {
	p0, err := profileExposures(req.Profile0, req.Sequence0)
	if err != nil {
		return Configuration{}, fmt.Errorf("profile 0: %w", err)
	}
	p1, err := profileExposures(req.Profile1, req.Sequence1)
	if err != nil {
		return Configuration{}, fmt.Errorf("profile 1: %w", err)
	}

	diag := NewLogDiagnostics(s.log, s.metrics, id)
	cfg, err := s.repo.Configure(id, p0, p1, diag)
	if err != nil {
		return Configuration{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	s.updateGauges()

	s.log.Info("camera configured",
		slog.String("camera_id", string(id)),
		slog.String("config_id", cfg.ID.String()),
		slog.Int("profile0_exposures", len(cfg.Profile0)),
		slog.Int("profile1_exposures", len(cfg.Profile1)))
	return cfg, nil
}

func profileExposures(list []uint32, sequence string) ([]uint32, error) {
	if sequence == "" {
		return list, nil
	}
	if len(list) > 0 {
		return nil, fmt.Errorf("%w: both exposure list and sequence given", ErrInvalidConfiguration)
	}
	steps, err := hdr.ParseSequence(sequence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return hdr.StepExposures(steps), nil
}

// ProcessFrame assigns HDR metadata to one frame of the camera.
func (s *Service) ProcessFrame(id CameraID, req FrameRequest) (FrameResult, error) {
	res, err := s.repo.ProcessFrame(id, req.FrameNumber, req.ExposureUs)
	if err != nil {
		s.recordRejected(err)
		return FrameResult{}, err
	}
	if s.metrics != nil {
		s.metrics.IncFramesProcessed()
	}
	return res, nil
}

func (s *Service) recordRejected(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, hdr.ErrInvalidFrameNumber):
		s.metrics.IncFramesRejected("invalid_frame_number")
	case errors.Is(err, hdr.ErrUnknownExposure):
		s.metrics.IncFramesRejected("unknown_exposure")
	case errors.Is(err, ErrNotConfigured):
		s.metrics.IncFramesRejected("not_configured")
	default:
		s.metrics.IncFramesRejected("internal")
	}
}

// RequestSwitch asks the camera to change profile. The signal is handed out
// with the next frames' results.
func (s *Service) RequestSwitch(id CameraID, req SwitchRequest) error {
	if req.Profile == nil {
		return fmt.Errorf("profile is required: %w", hdr.ErrInvalidSwitch)
	}
	retries := req.Retries
	if retries <= 0 {
		retries = s.switchRetries
	}
	if err := s.repo.RequestSwitch(id, *req.Profile, retries); err != nil {
		return err
	}
	s.log.Info("profile switch requested",
		slog.String("camera_id", string(id)),
		slog.Int("profile", int(*req.Profile)),
		slog.Int("retries", retries))
	return nil
}

// Reset drops the camera's configuration, tracker and pending switch.
func (s *Service) Reset(id CameraID) {
	s.repo.Reset(id)
	s.updateGauges()
	s.log.Info("camera reset", slog.String("camera_id", string(id)))
}

// IsConfigured reports whether the camera has an exposure configuration.
func (s *Service) IsConfigured(id CameraID) bool {
	_, ok := s.repo.Configuration(id)
	return ok
}

// Configuration returns the camera's current configuration.
func (s *Service) Configuration(id CameraID) (Configuration, bool) {
	return s.repo.Configuration(id)
}

// Snapshot returns the camera's sequencing state.
func (s *Service) Snapshot(id CameraID) (Snapshot, bool) {
	return s.repo.Snapshot(id)
}

// CurrentProfile returns the profile of the camera's last frame, or -1 if the
// camera is not configured or has not processed a frame yet.
func (s *Service) CurrentProfile(id CameraID) int {
	snap, ok := s.repo.Snapshot(id)
	if !ok {
		return -1
	}
	return snap.CurrentProfile
}

// ProfileWindowSize returns the number of exposures in the camera's profile,
// or 0 if the camera or profile is not configured.
func (s *Service) ProfileWindowSize(id CameraID, profile hdr.ProfileID) int {
	snap, ok := s.repo.Snapshot(id)
	if !ok || !profile.Valid() {
		return 0
	}
	return snap.WindowSizes[profile]
}

func (s *Service) updateGauges() {
	if s.metrics != nil {
		s.metrics.SetConfiguredCameras(s.repo.ConfiguredCameraCount())
	}
}
