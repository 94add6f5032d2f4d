package hdr

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateExposure is returned when one profile lists the same
	// exposure value at two positions.
	ErrDuplicateExposure = errors.New("duplicate exposure within profile")

	// ErrProfileTooLong is returned when a profile has more exposures than
	// the 8-bit position field can address.
	ErrProfileTooLong = errors.New("profile has too many exposures")
)

// Registry maps exposure values to the (profile, position) they identify.
// It is built once by NewRegistry and never modified afterwards.
type Registry struct {
	profiles [profileCount]Profile
	adjusted [profileCount][]uint32
	entries  map[uint32]Entry
}

// NewRegistry builds the exposure lookup for the two profiles. When a value
// appears in both lists, profile 0 keeps it and profile 1's entry moves to the
// next unused value; the adjusted lists returned by Adjusted reflect the move
// and are what the camera must be programmed with. Either list may be empty.
func NewRegistry(profile0, profile1 []uint32, diag Diagnostics) (*Registry, error) {
	diag = diagnosticsOrNop(diag)

	r := &Registry{}
	for i, exposures := range [profileCount][]uint32{profile0, profile1} {
		if len(exposures) > maxWindowSize {
			return nil, fmt.Errorf("profile %d: %d exposures (max %d): %w",
				i, len(exposures), maxWindowSize, ErrProfileTooLong)
		}
		if err := checkUnique(ProfileID(i), exposures); err != nil {
			return nil, err
		}
		r.profiles[i] = Profile{Exposures: append([]uint32(nil), exposures...)}
	}

	work := make(map[uint32]Entry, len(profile0)+len(profile1))
	for p := range r.profiles {
		for i, exp := range r.profiles[p].Exposures {
			work[exp] = Entry{Profile: ProfileID(p), Position: uint8(i)}
		}
	}

	// Collisions are resolved in profile 1 list order so identical input
	// always produces identical adjustments.
	p0 := positions(r.profiles[Profile0].Exposures)
	for i, exp := range r.profiles[Profile1].Exposures {
		pos0, shared := p0[exp]
		if !shared {
			continue
		}
		adjusted := exp
		for {
			if _, taken := work[adjusted]; !taken {
				break
			}
			adjusted++
		}
		work[exp] = Entry{Profile: Profile0, Position: pos0}
		work[adjusted] = Entry{Profile: Profile1, Position: uint8(i)}
		diag.ExposureAdjusted(exp, adjusted, uint8(i))
	}

	for p := range r.adjusted {
		r.adjusted[p] = make([]uint32, r.profiles[p].WindowSize())
	}
	for exp, e := range work {
		r.adjusted[e.Profile][e.Position] = exp
	}
	r.entries = work

	return r, nil
}

func checkUnique(p ProfileID, exposures []uint32) error {
	seen := make(map[uint32]int, len(exposures))
	for i, exp := range exposures {
		if j, ok := seen[exp]; ok {
			return fmt.Errorf("profile %d: exposure %d at positions %d and %d: %w",
				p, exp, j, i, ErrDuplicateExposure)
		}
		seen[exp] = i
	}
	return nil
}

func positions(exposures []uint32) map[uint32]uint8 {
	m := make(map[uint32]uint8, len(exposures))
	for i, exp := range exposures {
		m[exp] = uint8(i)
	}
	return m
}

// Lookup resolves an exposure value reported by the camera.
func (r *Registry) Lookup(exposure uint32) (Entry, bool) {
	e, ok := r.entries[exposure]
	return e, ok
}

// WindowSize returns the bracket length of profile p, 0 if unconfigured.
func (r *Registry) WindowSize(p ProfileID) int {
	if !p.Valid() {
		return 0
	}
	return r.profiles[p].WindowSize()
}

// Exposures returns a copy of profile p's exposures as configured.
func (r *Registry) Exposures(p ProfileID) []uint32 {
	if !p.Valid() {
		return nil
	}
	return append([]uint32{}, r.profiles[p].Exposures...)
}

// Adjusted returns a copy of profile p's exposures after collision resolution.
func (r *Registry) Adjusted(p ProfileID) []uint32 {
	if !p.Valid() {
		return nil
	}
	return append([]uint32{}, r.adjusted[p]...)
}

// Len returns the number of registered exposure values.
func (r *Registry) Len() int {
	return len(r.entries)
}
