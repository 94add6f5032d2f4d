package hdr

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSequence(t *testing.T) {
	tests := []struct {
		in   string
		want []Step
	}{
		{"", nil},
		{"   ", nil},
		{"19,150", []Step{{ExposureUs: 19}, {ExposureUs: 150}}},
		{"19:1.5, 250", []Step{{ExposureUs: 19, Gain: 1.5}, {ExposureUs: 250}}},
		{"12.7", []Step{{ExposureUs: 12}}},
		{" 100 : 0 ,200:3", []Step{{ExposureUs: 100}, {ExposureUs: 200, Gain: 3}}},
	}
	for _, tt := range tests {
		got, err := ParseSequence(tt.in)
		if err != nil {
			t.Errorf("ParseSequence(%q): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSequence(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseSequence_invalid(t *testing.T) {
	for _, in := range []string{"abc", "10,,20", "-1", "10:x", "NaN", "1e20", "10,"} {
		if _, err := ParseSequence(in); !errors.Is(err, ErrInvalidSequence) {
			t.Errorf("ParseSequence(%q): expected ErrInvalidSequence, got %v", in, err)
		}
	}
}

func TestStepExposures(t *testing.T) {
	got := StepExposures([]Step{{ExposureUs: 19, Gain: 2}, {ExposureUs: 150}})
	if !reflect.DeepEqual(got, []uint32{19, 150}) {
		t.Errorf("StepExposures = %v", got)
	}
	if got := StepExposures(nil); len(got) != 0 {
		t.Errorf("StepExposures(nil) = %v", got)
	}
}
