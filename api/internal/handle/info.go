package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ai-tutors/api/internal/store"
)

// --- TUTOR INFO -------------------------------------------------------------

type tutorInfoResp struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Introduction string `json:"introduction"`
	Instructions string `json:"instructions"`
	Guidelines   string `json:"guidelines"`
	Knowledge    string `json:"knowledge,omitempty"`
	TeacherEmail string `json:"teacher_email,omitempty"`
}

// TutorInfo resolves an access code to everything needed to instantiate a
// tutor session.
func (h *Handle) TutorInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	code := strings.TrimSpace(r.URL.Query().Get("access_code"))
	if code == "" {
		http.Error(w, "access_code is required", http.StatusBadRequest)
		return
	}

	row, err := h.resolveTutor(r, code)
	if err != nil {
		writeCodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tutorInfoResp{
		Name:         row.Name,
		Description:  row.Description,
		Introduction: row.Introduction,
		Instructions: row.Instructions,
		Guidelines:   row.Guidelines,
		Knowledge:    row.Knowledge,
		TeacherEmail: row.CreatorEmail,
	})
}

// --- CATALOG ----------------------------------------------------------------

type tutorListItem struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	CreatorEmail string `json:"creator_email,omitempty"`
}

// ListTutors is the public catalog of available tutors.
func (h *Handle) ListTutors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	rows, err := h.Tutors.ListAvailable(r.Context())
	if err != nil {
		http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]tutorListItem, 0, len(rows))
	for _, t := range rows {
		out = append(out, tutorListItem{Name: t.Name, Description: t.Description, CreatorEmail: t.CreatorEmail})
	}
	writeJSON(w, http.StatusOK, out)
}

// --- TURN AUDIT -------------------------------------------------------------

// Turns returns recent moderated turns for an access code (teacher review).
func (h *Handle) Turns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	code := strings.TrimSpace(r.URL.Query().Get("access_code"))
	if code == "" {
		http.Error(w, "access_code is required", http.StatusBadRequest)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	recs, err := h.Transcripts.RecentByCode(r.Context(), code, limit)
	if err != nil {
		http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// --- helpers ----------------------------------------------------------------

func (h *Handle) resolveTutor(r *http.Request, code string) (*store.TutorRow, error) {
	ac, err := h.Codes.Resolve(r.Context(), code, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	row, err := h.Tutors.Get(r.Context(), ac.TutorName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrCodeNotFound
		}
		return nil, err
	}
	return row, nil
}

func writeCodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrCodeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrCodeExpired):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
	}
}
