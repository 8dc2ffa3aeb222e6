package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/promptstudio/promptstudio"
)

// stateResponse is the view model the page polls.
type stateResponse struct {
	Phase        string `json:"phase"`
	Loading      bool   `json:"loading"`
	LoadingKind  string `json:"loadingKind,omitempty"`
	Error        string `json:"error,omitempty"`
	Prompt       string `json:"prompt"`
	GeneratedURI string `json:"generatedUri,omitempty"`
	EditedURI    string `json:"editedUri,omitempty"`
	HasGenerated bool   `json:"hasGenerated"`
	HasEdited    bool   `json:"hasEdited"`
	CanExport    bool   `json:"canExport"`
}

func (s *Server) stateFrom(snap promptstudio.Snapshot) stateResponse {
	resp := stateResponse{
		Phase:        string(snap.Phase),
		Loading:      snap.Loading(),
		LoadingKind:  string(snap.InFlight),
		Error:        snap.LastError,
		Prompt:       snap.Prompt,
		HasGenerated: snap.Generated != nil,
		HasEdited:    snap.Edited != nil,
		CanExport:    s.storage != nil,
	}
	if snap.Generated != nil {
		resp.GeneratedURI = snap.Generated.DataURI()
	}
	if snap.Edited != nil {
		resp.EditedURI = snap.Edited.DataURI()
	}
	return resp
}

// session returns the workflow session for this browser, minting the cookie
// on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *promptstudio.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.sessions.get(id).session
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Touch the session so the cookie exists before the first API call.
	s.session(w, r)

	if err := s.tmpl.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("template execution failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, s.stateFrom(sess.Snapshot()))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	prompt := r.FormValue("prompt")

	// The dispatched call must outlive this HTTP exchange; only cancel it
	// through Reset's stale guard, never through the request context.
	accepted := sess.RequestGenerate(context.WithoutCancel(r.Context()), prompt)

	status := http.StatusAccepted
	if !accepted {
		// Precondition not met; a silent no-op, not an error.
		status = http.StatusOK
	}
	writeJSON(w, status, s.stateFrom(sess.Snapshot()))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	prompt := r.FormValue("prompt")

	accepted := sess.RequestEdit(context.WithoutCancel(r.Context()), prompt)

	status := http.StatusAccepted
	if !accepted {
		status = http.StatusOK
	}
	writeJSON(w, status, s.stateFrom(sess.Snapshot()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Reset()
	writeJSON(w, http.StatusOK, s.stateFrom(sess.Snapshot()))
}

// artifactForRole resolves "generated" or "edited" against the snapshot.
func artifactForRole(snap promptstudio.Snapshot, role string) *promptstudio.Artifact {
	switch role {
	case "generated":
		return snap.Generated
	case "edited":
		return snap.Edited
	default:
		return nil
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	role := r.PathValue("role")

	art := artifactForRole(sess.Snapshot(), role)
	if art == nil {
		http.Error(w, "no such image", http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("%s.%s", role, art.Extension())
	w.Header().Set("Content-Type", art.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(art.Data); err != nil {
		s.logger.Warn("download write failed", "role", role, "error", err.Error())
	}
}

type exportResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int    `json:"size"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		http.Error(w, "storage not configured", http.StatusConflict)
		return
	}

	sess := s.session(w, r)
	role := r.FormValue("role")

	art := artifactForRole(sess.Snapshot(), role)
	if art == nil {
		http.Error(w, "no such image", http.StatusNotFound)
		return
	}

	basePath := fmt.Sprintf("exports/%s/%s-%s",
		time.Now().Format("2006-01-02"), role, uuid.New().String())

	result, err := promptstudio.SaveArtifact(r.Context(), s.storage, *art, basePath)
	if err != nil {
		s.logger.Error("export failed", "role", role, "error", err.Error())
		http.Error(w, "export failed", http.StatusBadGateway)
		return
	}

	s.logger.Info("artifact exported", "role", role, "path", result.Path, "size", result.Size)
	writeJSON(w, http.StatusOK, exportResponse{
		URL:  result.URL,
		Path: result.Path,
		Size: result.Size,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
