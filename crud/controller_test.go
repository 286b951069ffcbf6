package crud_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/armature-dev/armature/crud"
	"github.com/armature-dev/armature/internal/notes"
	"github.com/armature-dev/armature/internal/testutil"
	"github.com/armature-dev/armature/respond"
	"github.com/armature-dev/armature/router"
)

// newNotesAPI wires the notes resource behind a dispatcher the way the
// demo server does, mounted under the default /api/ prefix.
func newNotesAPI(t *testing.T) (http.Handler, *crud.Model) {
	t.Helper()
	db := testutil.NewTestDB(t)
	model := notes.NewModel(db)

	tbl := router.NewTable()
	tbl.Resource("notes", crud.NewController(model))
	return router.New(tbl), model
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, respond.Envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env respond.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v; body: %s", err, rec.Body.String())
	}
	return rec, env
}

func createNote(t *testing.T, h http.Handler, body string) map[string]any {
	t.Helper()
	rec, env := doJSON(t, h, http.MethodPost, "/api/notes", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("create data = %T, want object", env.Data)
	}
	return data
}

func TestController_IndexEmpty(t *testing.T) {
	h, _ := newNotesAPI(t)
	rec, env := doJSON(t, h, http.MethodGet, "/api/notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
	if list, ok := env.Data.([]any); !ok || len(list) != 0 {
		t.Errorf("data = %v, want empty list", env.Data)
	}
}

func TestController_StoreAndShow(t *testing.T) {
	h, _ := newNotesAPI(t)
	created := createNote(t, h, `{"title":"Hello world","body":"first"}`)

	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected id in created record")
	}

	rec, env := doJSON(t, h, http.MethodGet, "/api/notes/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("show status = %d, want 200", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	if data["title"] != "Hello world" {
		t.Errorf("title = %v, want %q", data["title"], "Hello world")
	}
}

// A client-supplied id is not fillable, so the store succeeds with a
// generated key instead of failing or honoring the client's value.
func TestController_StoreIgnoresClientKey(t *testing.T) {
	h, _ := newNotesAPI(t)
	created := createNote(t, h, `{"id":"client-supplied","title":"Valid title"}`)
	id, _ := created["id"].(string)
	if id == "" || id == "client-supplied" {
		t.Errorf("id = %q, want a generated key", id)
	}
}

func TestController_StoreInvalidJSON(t *testing.T) {
	h, _ := newNotesAPI(t)
	for _, body := range []string{"", "   ", "{broken"} {
		rec, env := doJSON(t, h, http.MethodPost, "/api/notes", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		if env.Message != "Invalid JSON data" {
			t.Errorf("body %q: message = %q", body, env.Message)
		}
	}
}

func TestController_StoreValidationFailure(t *testing.T) {
	h, _ := newNotesAPI(t)
	rec, env := doJSON(t, h, http.MethodPost, "/api/notes", `{"title":"ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Message != "Validation failed" {
		t.Errorf("message = %q, want %q", env.Message, "Validation failed")
	}
	details, ok := env.Details.(map[string]any)
	if !ok {
		t.Fatalf("details = %T, want field map", env.Details)
	}
	if _, ok := details["title"]; !ok {
		t.Error("expected title in validation details")
	}
}

func TestController_ShowMissing(t *testing.T) {
	h, _ := newNotesAPI(t)
	rec, env := doJSON(t, h, http.MethodGet, "/api/notes/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Message != "Record not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestController_Update(t *testing.T) {
	h, _ := newNotesAPI(t)
	created := createNote(t, h, `{"title":"Before edit"}`)
	id := created["id"].(string)

	rec, env := doJSON(t, h, http.MethodPut, "/api/notes/"+id, `{"title":"After edit"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	data, _ := env.Data.(map[string]any)
	if data["title"] != "After edit" {
		t.Errorf("title = %v, want %q", data["title"], "After edit")
	}
}

func TestController_UpdateMissing(t *testing.T) {
	h, _ := newNotesAPI(t)
	rec, _ := doJSON(t, h, http.MethodPut, "/api/notes/no-such-id", `{"title":"Valid title"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestController_Destroy(t *testing.T) {
	h, _ := newNotesAPI(t)
	created := createNote(t, h, `{"title":"Doomed note"}`)
	id := created["id"].(string)

	rec, _ := doJSON(t, h, http.MethodDelete, "/api/notes/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("destroy status = %d, want 200", rec.Code)
	}
	rec, _ = doJSON(t, h, http.MethodGet, "/api/notes/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("show after destroy status = %d, want 404", rec.Code)
	}
}

func TestController_DestroyMissing(t *testing.T) {
	h, _ := newNotesAPI(t)
	rec, _ := doJSON(t, h, http.MethodDelete, "/api/notes/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
