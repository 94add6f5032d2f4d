package hdr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSequence is returned by ParseSequence for malformed input.
var ErrInvalidSequence = errors.New("invalid exposure sequence")

// Step is one entry of a camera sequencer program.
type Step struct {
	ExposureUs uint32  `json:"exposure_us" yaml:"exposure_us"`
	Gain       float64 `json:"gain" yaml:"gain"`
}

// ParseSequence parses "exposure[:gain],exposure[:gain],..." where exposure is
// in microseconds (fractions are truncated) and gain defaults to 0.
// An empty string is an empty (unconfigured) profile.
func ParseSequence(s string) ([]Step, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	steps := make([]Step, 0, len(parts))
	for i, part := range parts {
		expStr, gainStr, hasGain := strings.Cut(strings.TrimSpace(part), ":")
		exp, err := strconv.ParseFloat(strings.TrimSpace(expStr), 64)
		if err != nil || math.IsNaN(exp) || exp < 0 || exp > float64(^uint32(0)) {
			return nil, fmt.Errorf("step %d %q: bad exposure: %w", i, part, ErrInvalidSequence)
		}
		step := Step{ExposureUs: uint32(exp)}
		if hasGain {
			gain, err := strconv.ParseFloat(strings.TrimSpace(gainStr), 64)
			if err != nil {
				return nil, fmt.Errorf("step %d %q: bad gain: %w", i, part, ErrInvalidSequence)
			}
			step.Gain = gain
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// StepExposures returns the exposure values of steps in order.
func StepExposures(steps []Step) []uint32 {
	out := make([]uint32, len(steps))
	for i, s := range steps {
		out[i] = s.ExposureUs
	}
	return out
}
