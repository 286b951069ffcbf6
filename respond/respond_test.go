package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armature-dev/armature/respond"
)

var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.OK(rec, "Records retrieved", []string{"a", "b"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "Records retrieved", env.Message)
	assert.Equal(t, []any{"a", "b"}, env.Data)
	assert.Nil(t, env.Details)
	assert.Regexp(t, timestampRe, env.Timestamp)
}

func TestErrorCarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.Unprocessable(rec, "Validation failed", map[string][]string{
		"name": {"The name field is required."},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	details, ok := env.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "name")
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		write func(w http.ResponseWriter)
		code  int
	}{
		{func(w http.ResponseWriter) { respond.Created(w, "Record created", nil) }, http.StatusCreated},
		{func(w http.ResponseWriter) { respond.BadRequest(w, "Invalid JSON data", nil) }, http.StatusBadRequest},
		{func(w http.ResponseWriter) { respond.NotFound(w, "Record not found") }, http.StatusNotFound},
		{func(w http.ResponseWriter) { respond.Internal(w, "Failed") }, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec)
		assert.Equal(t, tc.code, rec.Code)
	}
}

// Success and error payloads share one envelope; data and details are
// omitted from the JSON when unset.
func TestEnvelopeOmitsEmptySides(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.NotFound(rec, "Record not found")

	body := rec.Body.String()
	assert.NotContains(t, body, `"data"`)
	assert.NotContains(t, body, `"details"`)
}
