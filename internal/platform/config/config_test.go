package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCameras(t *testing.T) {
	in := []byte(`
cameras:
  - id: cam0
    profile0: "19,150"
    profile1: "19:1.5,250,450"
  - id: cam1
    profile0: "50"
`)
	cams, err := ParseCameras(in)
	if err != nil {
		t.Fatalf("ParseCameras: %v", err)
	}
	if len(cams) != 2 {
		t.Fatalf("expected 2 cameras, got %d", len(cams))
	}
	if cams[0] != (Camera{ID: "cam0", Profile0: "19,150", Profile1: "19:1.5,250,450"}) {
		t.Errorf("cam0 = %+v", cams[0])
	}
	if cams[1].ID != "cam1" || cams[1].Profile0 != "50" || cams[1].Profile1 != "" {
		t.Errorf("cam1 = %+v", cams[1])
	}
}

func TestParseCameras_errors(t *testing.T) {
	tests := map[string]string{
		"missing_id": "cameras:\n  - profile0: \"1,2\"\n",
		"duplicate":  "cameras:\n  - id: a\n  - id: a\n",
		"bad_yaml":   "cameras: [\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCameras([]byte(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCameras(t *testing.T) {
	cams, err := LoadCameras("")
	if err != nil || cams != nil {
		t.Errorf("empty path: got %v, %v", cams, err)
	}

	path := filepath.Join(t.TempDir(), "cameras.yaml")
	if err := os.WriteFile(path, []byte("cameras:\n  - id: cam0\n    profile0: \"10,20\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cams, err = LoadCameras(path)
	if err != nil {
		t.Fatalf("LoadCameras: %v", err)
	}
	if len(cams) != 1 || cams[0].ID != "cam0" {
		t.Errorf("LoadCameras = %+v", cams)
	}

	if _, err := LoadCameras(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HDR_TEST_STR", "value")
	t.Setenv("HDR_TEST_INT", "42")
	t.Setenv("HDR_TEST_BAD_INT", "forty")

	if got := GetEnv("HDR_TEST_STR", "x"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("HDR_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("HDR_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("HDR_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("GetEnvInt bad value = %d", got)
	}
}

func TestLoad_env_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("HDR_TEST_FROM_FILE=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HDR_TEST_FROM_FILE", "")
	os.Unsetenv("HDR_TEST_FROM_FILE")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := GetEnv("HDR_TEST_FROM_FILE", "no"); got != "yes" {
		t.Errorf("value from env file = %q", got)
	}
}

func TestFromEnv_defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "SWITCH_RETRIES", "CAMERAS_FILE"} {
		t.Setenv(k, "")
	}
	s := FromEnv(1)
	want := Settings{Port: "8080", LogLevel: "info", LogFormat: "json", SwitchRetries: 1}
	if s != want {
		t.Errorf("FromEnv = %+v, want %+v", s, want)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate defaults: %v", err)
	}
}

func TestFromEnv_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("SWITCH_RETRIES", "4")
	t.Setenv("CAMERAS_FILE", "/etc/hdr/cameras.yaml")

	s := FromEnv(1)
	if s.Port != "9090" || s.LogFormat != "text" || s.SwitchRetries != 4 || s.CamerasFile != "/etc/hdr/cameras.yaml" {
		t.Errorf("FromEnv = %+v", s)
	}
}

func TestSettings_Validate(t *testing.T) {
	valid := Settings{Port: "8080", LogLevel: "info", LogFormat: "json", SwitchRetries: 1}
	tests := map[string]func(*Settings){
		"port_not_number": func(s *Settings) { s.Port = "http" },
		"port_zero":       func(s *Settings) { s.Port = "0" },
		"port_too_big":    func(s *Settings) { s.Port = "70000" },
		"log_format":      func(s *Settings) { s.LogFormat = "xml" },
		"switch_retries":  func(s *Settings) { s.SwitchRetries = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := valid
			mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
