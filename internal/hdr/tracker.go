package hdr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFrameNumber is returned for frame number 0.
	ErrInvalidFrameNumber = errors.New("frame number must be greater than zero")

	// ErrUnknownExposure is returned when the reported exposure is not one of
	// the configured (or adjusted) values.
	ErrUnknownExposure = errors.New("exposure not found in configured sequences")

	// ErrOffsetNotConverged signals a broken invariant in the profile switch
	// correction. It is not caused by caller input.
	ErrOffsetNotConverged = errors.New("frame offset refinement did not converge")
)

// Tracker assigns every frame its bracket (master sequence) number, keeping
// the numbering continuous when the camera switches profiles.
//
// A Tracker is not safe for concurrent use; frames must be submitted by a
// single caller in capture order.
type Tracker struct {
	registry *Registry
	diag     Diagnostics

	started      bool
	lastFrame    uint64
	lastProfile  ProfileID
	lastPosition uint8
	offset       int64
}

// NewTracker returns a Tracker that classifies frames with reg.
func NewTracker(reg *Registry, diag Diagnostics) *Tracker {
	return &Tracker{registry: reg, diag: diagnosticsOrNop(diag)}
}

// Process classifies one frame. Frame numbers may have gaps or move
// backwards; only the order of calls matters for continuity. On error the
// tracker state is left untouched.
func (t *Tracker) Process(frame uint64, exposure uint32) (Metadata, error) {
	if frame == 0 {
		return Metadata{}, ErrInvalidFrameNumber
	}
	e, ok := t.registry.Lookup(exposure)
	if !ok {
		return Metadata{}, fmt.Errorf("exposure %dus: %w", exposure, ErrUnknownExposure)
	}

	offset := t.offset
	if t.started && e.Profile != t.lastProfile {
		var err error
		offset, err = t.switchOffset(frame, e.Profile, e.Position)
		if err != nil {
			return Metadata{}, err
		}
		t.diag.ProfileSwitched(frame, t.lastProfile, e.Profile, e.Position, offset)
	}

	w := t.registry.WindowSize(e.Profile)
	seq := MasterSequence(int64(frame)+offset, w)

	t.offset = offset
	t.started = true
	t.lastFrame = frame
	t.lastProfile = e.Profile
	t.lastPosition = e.Position

	return Metadata{
		MasterSequence: uint64(seq),
		ExposureValue:  exposure,
		ExposureIndex:  e.Position,
		ExposureCount:  uint8(w),
		Profile:        e.Profile,
	}, nil
}

// switchOffset computes the frame offset to use from frame n onwards after a
// switch from the last profile to next, where the frame sits at position.
//
// The new offset places n inside the bracket the old profile was in (or the
// one after it, if that bracket was complete) so that counting continues as
// though a single sequence had been running all along.
func (t *Tracker) switchOffset(n uint64, next ProfileID, position uint8) (int64, error) {
	prvW := t.registry.WindowSize(t.lastProfile)
	nxW := t.registry.WindowSize(next)
	frame := int64(n)

	prevSeq := MasterSequence(frame+t.offset, prvW)

	// Last slot of prevSeq under the new window size, then walk back to its
	// first slot.
	offset := prevSeq*int64(nxW) - frame
	converged := false
	for i := 0; i <= nxW; i++ {
		if MasterSequence(frame+offset-1, nxW) != prevSeq {
			converged = true
			break
		}
		offset--
	}
	if !converged {
		return 0, fmt.Errorf("frame %d, window %d: %w", n, nxW, ErrOffsetNotConverged)
	}

	offset += int64(position)

	// A switch out of an unfinished bracket that lands on position 0 looks
	// like a fresh bracket and must get a new number.
	midBracket := prvW > 1 && int(t.lastPosition) < prvW-1
	if midBracket && position == 0 && MasterSequence(frame+offset, nxW) == prevSeq {
		offset += int64(nxW)
	}
	return offset, nil
}

// State returns a copy of the tracker's mutable state.
func (t *Tracker) State() TrackerState {
	return TrackerState{
		Started:      t.started,
		LastFrame:    t.lastFrame,
		LastProfile:  t.lastProfile,
		LastPosition: t.lastPosition,
		FrameOffset:  t.offset,
	}
}

// Registry returns the registry the tracker classifies frames with.
func (t *Tracker) Registry() *Registry {
	return t.registry
}
