package sequencer

import (
	"errors"
	"sync"
	"time"

	"hdr-sequencer/internal/hdr"

	"github.com/google/uuid"
)

// Repository defines the concurrency-safe contract for accessing and mutating
// per-camera sequencing state. The hdr core is single-threaded; the
// repository is where concurrent callers get serialized.
type Repository interface {
	// Configure builds a fresh registry and tracker for the camera from the
	// two exposure lists, replacing any previous configuration and dropping
	// any pending profile switch.
	Configure(id CameraID, profile0, profile1 []uint32, diag hdr.Diagnostics) (Configuration, error)

	// ProcessFrame classifies one frame for the camera and polls its pending
	// switch signal. The signal is only consumed when the frame is accepted.
	ProcessFrame(id CameraID, frame uint64, exposure uint32) (FrameResult, error)

	// RequestSwitch arms the camera's profile switcher.
	RequestSwitch(id CameraID, target hdr.ProfileID, retries int) error

	// Reset forgets the camera. Resetting an unknown camera is a no-op.
	Reset(id CameraID)

	// Configuration returns the camera's current configuration.
	Configuration(id CameraID) (Configuration, bool)

	// Snapshot returns the camera's current sequencing state.
	Snapshot(id CameraID) (Snapshot, bool)

	// ConfiguredCameraCount returns the number of configured cameras.
	// Used for metrics.
	ConfiguredCameraCount() int
}

// ErrNotConfigured is returned for operations on a camera that has no
// exposure configuration.
var ErrNotConfigured = errors.New("camera is not configured")

// InMemoryRepository is a concurrency-safe in-memory implementation of Repository.
// It uses a Store for persistence; by default that is an InMemoryStore.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a new repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given Store.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// Configure implements Repository.Configure.
func (r *InMemoryRepository) Configure(id CameraID, profile0, profile1 []uint32, diag hdr.Diagnostics) (Configuration, error) {
	// The registry is built outside the lock; it only touches its inputs.
	reg, err := hdr.NewRegistry(profile0, profile1, diag)
	if err != nil {
		return Configuration{}, err
	}

	cfg := Configuration{
		ID:           uuid.New(),
		Profile0:     reg.Exposures(hdr.Profile0),
		Profile1:     reg.Exposures(hdr.Profile1),
		Adjusted0:    reg.Adjusted(hdr.Profile0),
		Adjusted1:    reg.Adjusted(hdr.Profile1),
		ConfiguredAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.SetCamera(&CameraState{
		ID:      id,
		Config:  cfg,
		Tracker: hdr.NewTracker(reg, diag),
	})
	return cfg.clone(), nil
}

// ProcessFrame implements Repository.ProcessFrame.
func (r *InMemoryRepository) ProcessFrame(id CameraID, frame uint64, exposure uint32) (FrameResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cam, ok := r.getConfiguredLocked(id)
	if !ok {
		return FrameResult{}, ErrNotConfigured
	}

	md, err := cam.Tracker.Process(frame, exposure)
	if err != nil {
		return FrameResult{}, err
	}

	res := FrameResult{Metadata: md}
	if p, ok := cam.Switcher.PendingSignal(); ok {
		res.SignalProfile = &p
	}
	return res, nil
}

// RequestSwitch implements Repository.RequestSwitch.
func (r *InMemoryRepository) RequestSwitch(id CameraID, target hdr.ProfileID, retries int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cam, ok := r.getConfiguredLocked(id)
	if !ok {
		return ErrNotConfigured
	}
	return cam.Switcher.RequestSwitch(target, retries)
}

// Reset implements Repository.Reset.
func (r *InMemoryRepository) Reset(id CameraID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.DeleteCamera(id)
}

// Configuration implements Repository.Configuration.
func (r *InMemoryRepository) Configuration(id CameraID) (Configuration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cam, ok := r.getConfiguredLocked(id)
	if !ok {
		return Configuration{}, false
	}
	return cam.Config.clone(), true
}

// Snapshot implements Repository.Snapshot.
func (r *InMemoryRepository) Snapshot(id CameraID) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cam, ok := r.getConfiguredLocked(id)
	if !ok {
		return Snapshot{}, false
	}

	state := cam.Tracker.State()
	reg := cam.Tracker.Registry()
	snap := Snapshot{
		CameraID:       cam.ID,
		ConfigID:       cam.Config.ID,
		CurrentProfile: -1,
		WindowSizes:    [2]int{reg.WindowSize(hdr.Profile0), reg.WindowSize(hdr.Profile1)},
		Switching:      cam.Switcher.IsSwitching(),
		Tracker:        state,
	}
	if state.Started {
		snap.CurrentProfile = int(state.LastProfile)
	}
	return snap, true
}

// ConfiguredCameraCount implements Repository.ConfiguredCameraCount.
func (r *InMemoryRepository) ConfiguredCameraCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.store.ListCameraIDs() {
		if _, ok := r.getConfiguredLocked(id); ok {
			n++
		}
	}
	return n
}

// getConfiguredLocked returns the camera if it exists and has a tracker.
// Caller must hold r.mu.
func (r *InMemoryRepository) getConfiguredLocked(id CameraID) (*CameraState, bool) {
	cam, ok := r.store.GetCamera(id)
	if !ok || cam.Tracker == nil {
		return nil, false
	}
	return cam, true
}

// clone copies the exposure lists so callers cannot alias stored state.
func (c Configuration) clone() Configuration {
	c.Profile0 = append([]uint32{}, c.Profile0...)
	c.Profile1 = append([]uint32{}, c.Profile1...)
	c.Adjusted0 = append([]uint32{}, c.Adjusted0...)
	c.Adjusted1 = append([]uint32{}, c.Adjusted1...)
	return c
}
