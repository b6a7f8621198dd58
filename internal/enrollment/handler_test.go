package enrollment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bissquit/course-garden/internal/domain"
	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	service, _, _ := newTestService()
	r := chi.NewRouter()
	NewHandler(service).RegisterRoutes(r)
	return r
}

func serveAs(h http.Handler, user *domain.User, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if user != nil {
		req = req.WithContext(httputil.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_EnrollAndList(t *testing.T) {
	router := newTestRouter()
	alice := &domain.User{ID: "alice", Role: domain.RoleStudent}

	rec := serveAs(router, alice, http.MethodPost, "/enrollments", `{"courseId":"course-go"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Message    string                 `json:"message"`
		Enrollment map[string]interface{} `json:"enrollment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Successfully enrolled in course", body.Message)
	assert.Equal(t, "alice", body.Enrollment["studentId"])
	assert.Equal(t, "course-go", body.Enrollment["courseId"])
	assert.Contains(t, body.Enrollment, "enrolledAt")
	assert.Equal(t, "Go", body.Enrollment["course"].(map[string]interface{})["title"])

	rec = serveAs(router, alice, http.MethodPost, "/enrollments", `{"courseId":"course-go"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"already enrolled in this course"}`, rec.Body.String())

	rec = serveAs(router, alice, http.MethodGet, "/enrollments/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []domain.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "course-go", courses[0].ID)
}

func TestHandler_EnrollErrors(t *testing.T) {
	student := &domain.User{ID: "alice", Role: domain.RoleStudent}

	tests := []struct {
		name   string
		user   *domain.User
		body   string
		status int
	}{
		{"missing course id", student, `{}`, http.StatusBadRequest},
		{"unknown course", student, `{"courseId":"nope"}`, http.StatusNotFound},
		{"invalid json", student, `{`, http.StatusBadRequest},
		{"no identity", nil, `{"courseId":"course-go"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveAs(newTestRouter(), tt.user, http.MethodPost, "/enrollments", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_ListMineEmpty(t *testing.T) {
	rec := serveAs(newTestRouter(), &domain.User{ID: "bob"}, http.MethodGet, "/enrollments/me", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
