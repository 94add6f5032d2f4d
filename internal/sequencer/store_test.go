package sequencer

import (
	"testing"
)

func TestInMemoryStore_GetSetCamera(t *testing.T) {
	store := NewInMemoryStore()

	_, ok := store.GetCamera(CameraID("cam0"))
	if ok {
		t.Error("expected not found for empty store")
	}

	cam := &CameraState{ID: CameraID("cam0")}
	store.SetCamera(cam)

	got, ok := store.GetCamera(CameraID("cam0"))
	if !ok || got != cam {
		t.Errorf("GetCamera: ok=%v, got %p want %p", ok, got, cam)
	}
}

func TestInMemoryStore_SetCamera_replaces(t *testing.T) {
	store := NewInMemoryStore()
	cam1 := &CameraState{ID: CameraID("cam0")}
	cam2 := &CameraState{ID: CameraID("cam0")}
	store.SetCamera(cam1)
	store.SetCamera(cam2)

	got, ok := store.GetCamera(CameraID("cam0"))
	if !ok || got != cam2 {
		t.Errorf("SetCamera should replace: got %p want %p", got, cam2)
	}
	if n := len(store.ListCameraIDs()); n != 1 {
		t.Errorf("expected 1 camera id, got %d", n)
	}
}

func TestInMemoryStore_DeleteCamera(t *testing.T) {
	store := NewInMemoryStore()
	store.SetCamera(&CameraState{ID: CameraID("cam0")})
	store.SetCamera(&CameraState{ID: CameraID("cam1")})

	store.DeleteCamera(CameraID("cam0"))
	store.DeleteCamera(CameraID("missing"))

	if _, ok := store.GetCamera(CameraID("cam0")); ok {
		t.Error("cam0 should be gone")
	}
	ids := store.ListCameraIDs()
	if len(ids) != 1 || ids[0] != CameraID("cam1") {
		t.Errorf("ListCameraIDs = %v", ids)
	}
}

func TestNewInMemoryRepositoryWithStore(t *testing.T) {
	store := NewInMemoryStore()
	repo := NewInMemoryRepositoryWithStore(store)

	if _, err := repo.Configure(CameraID("cam0"), []uint32{10, 20}, nil, nil); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	// State should be in the store we injected.
	cam, ok := store.GetCamera(CameraID("cam0"))
	if !ok || cam.Tracker == nil {
		t.Error("injected store should contain a configured camera after Configure")
	}
}
