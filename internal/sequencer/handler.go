package sequencer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hdr-sequencer/internal/hdr"

	"github.com/go-chi/chi/v5"
)

const (
	binaryContentType = "application/octet-stream"
	jsonContentType   = "application/json"

	// SignalProfileHeader carries FrameResult.SignalProfile on binary responses.
	SignalProfileHeader = "X-Signal-Profile"
)

// Handler exposes sequencer HTTP endpoints using go-chi.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler returns a Handler that uses the given Service and Logger.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes mounts the camera endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/cameras/{camera_id}", func(r chi.Router) {
		r.Put("/profiles", h.Configure)
		r.Get("/profiles", h.GetConfiguration)
		r.Delete("/profiles", h.Reset)
		r.Post("/frames", h.ProcessFrame)
		r.Post("/switch", h.RequestSwitch)
		r.Get("/state", h.GetState)
	})
}

func cameraID(r *http.Request) CameraID {
	return CameraID(chi.URLParam(r, "camera_id"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Configure handles PUT /cameras/{camera_id}/profiles.
// Body: { "profile0": [19, 150], "profile1": [19, 250] } or
// { "sequence0": "19,150", "sequence1": "19:1.5,250" }.
func (h *Handler) Configure(w http.ResponseWriter, r *http.Request) {
	id := cameraID(r)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var req ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid configure body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cfg, err := h.svc.Configure(id, req)
	if err != nil {
		h.log.Info("configuration rejected",
			slog.String("camera_id", string(id)),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// GetConfiguration handles GET /cameras/{camera_id}/profiles.
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.svc.Configuration(cameraID(r))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// Reset handles DELETE /cameras/{camera_id}/profiles.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id := cameraID(r)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.svc.Reset(id)
	w.WriteHeader(http.StatusNoContent)
}

// ProcessFrame handles POST /cameras/{camera_id}/frames.
// Body: { "frame_number": 7, "exposure_us": 250 }. With
// "Accept: application/octet-stream" the reply is the packed metadata record.
func (h *Handler) ProcessFrame(w http.ResponseWriter, r *http.Request) {
	id := cameraID(r)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var req FrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid frame body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res, err := h.svc.ProcessFrame(id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, hdr.ErrInvalidFrameNumber), errors.Is(err, hdr.ErrUnknownExposure):
			h.log.Warn("frame rejected",
				slog.String("camera_id", string(id)),
				slog.Uint64("frame", req.FrameNumber),
				slog.Uint64("exposure_us", uint64(req.ExposureUs)),
				slog.String("error", err.Error()))
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			h.log.Error("process frame failed",
				slog.String("camera_id", string(id)),
				slog.Uint64("frame", req.FrameNumber),
				slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.log.Debug("frame processed",
		slog.String("camera_id", string(id)),
		slog.Uint64("frame", req.FrameNumber),
		slog.Uint64("master_sequence", res.MasterSequence),
		slog.Int("profile", int(res.Profile)),
		slog.Int("index", int(res.ExposureIndex)))

	if r.Header.Get("Accept") == binaryContentType {
		b, _ := res.Metadata.MarshalBinary()
		if res.SignalProfile != nil {
			w.Header().Set(SignalProfileHeader, strconv.Itoa(int(*res.SignalProfile)))
		}
		w.Header().Set("Content-Type", binaryContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(b)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RequestSwitch handles POST /cameras/{camera_id}/switch.
// Body: { "profile": 1, "retries": 3 }.
func (h *Handler) RequestSwitch(w http.ResponseWriter, r *http.Request) {
	id := cameraID(r)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid switch body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.svc.RequestSwitch(id, req); err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			h.log.Warn("cannot switch profile, camera not configured", slog.String("camera_id", string(id)))
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, hdr.ErrInvalidSwitch):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.log.Error("switch request failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetState handles GET /cameras/{camera_id}/state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.svc.Snapshot(cameraID(r))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
