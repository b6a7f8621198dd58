//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/bissquit/course-garden/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type courseJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
	Duration    string `json:"duration"`
	CreatedAt   string `json:"createdAt"`
}

// adminClient returns a validating client logged in as the bootstrap admin.
func adminClient(t *testing.T) *testutil.Client {
	t.Helper()
	client := newTestClient(t)
	client.LoginAs(t, adminEmail, adminPassword)
	return client
}

// signedUpClient returns a validating client for a fresh account with role.
func signedUpClient(t *testing.T, role string) (*testutil.Client, testutil.AuthResult) {
	t.Helper()
	client := newTestClient(t)
	result := client.SignupAs(t, role)
	return client, result
}

// createTestCourse creates a course as admin and returns it.
func createTestCourse(t *testing.T, title string) courseJSON {
	t.Helper()

	resp, err := adminClient(t).POST("/api/admin/courses", map[string]string{
		"title":       title + " " + uuid.NewString()[:8],
		"description": "Integration test course",
		"instructor":  "Dr. Test",
		"duration":    "4 weeks",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Course courseJSON `json:"course"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Course
}

// errorMessage decodes a {"error": "..."} body.
func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &body)
	return body.Error
}
