package handle

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatRejectsNonPost(t *testing.T) {
	h := &Handle{}
	req := httptest.NewRequest(http.MethodGet, "/v1/tutor/chat", nil)
	w := httptest.NewRecorder()

	h.Chat(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestChatRejectsBadJSON(t *testing.T) {
	h := &Handle{}
	req := httptest.NewRequest(http.MethodPost, "/v1/tutor/chat", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Chat(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatRejectsEmptyPrompt(t *testing.T) {
	h := &Handle{}
	body := `{"access_code":"ABC123","user_prompt":"   "}`
	req := httptest.NewRequest(http.MethodPost, "/v1/tutor/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Chat(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user_prompt is required")
}

func TestTutorInfoRequiresAccessCode(t *testing.T) {
	h := &Handle{}
	req := httptest.NewRequest(http.MethodGet, "/v1/tutor/info", nil)
	w := httptest.NewRecorder()

	h.TutorInfo(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestDeadline(t *testing.T) {
	def := 180 * time.Second

	req := httptest.NewRequest(http.MethodPost, "/v1/tutor/chat", nil)
	assert.Equal(t, def, requestDeadline(req, def))

	req = httptest.NewRequest(http.MethodPost, "/v1/tutor/chat", nil)
	req.Header.Set("X-Request-Timeout", "30")
	assert.Equal(t, 30*time.Second, requestDeadline(req, def))

	req = httptest.NewRequest(http.MethodPost, "/v1/tutor/chat?timeoutSec=45", nil)
	assert.Equal(t, 45*time.Second, requestDeadline(req, def))

	// garbage falls back to the default
	req = httptest.NewRequest(http.MethodPost, "/v1/tutor/chat", nil)
	req.Header.Set("X-Request-Timeout", "zero")
	assert.Equal(t, def, requestDeadline(req, def))
}
