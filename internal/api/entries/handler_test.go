package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-vocab-coach/internal/core/notebook"
	"ai-vocab-coach/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type stubStore struct {
	saveErr error
	saved   []notebook.DictEntry
}

func (s *stubStore) Save(ctx context.Context, e notebook.DictEntry) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, e)
	return nil
}

func (s *stubStore) Unsave(ctx context.Context, id string) error { return nil }

func (s *stubStore) List(ctx context.Context) ([]notebook.DictEntry, error) {
	return s.saved, nil
}

func (s *stubStore) Lookup(ctx context.Context, term, sourceLang, targetLang string) (*notebook.DictEntry, error) {
	return nil, nil
}

func (s *stubStore) SetImageRef(ctx context.Context, id, imageRef string) error { return nil }

var _ notebook.Store = (*stubStore)(nil)

func postSave(t *testing.T, store notebook.Store, body any) *http.Response {
	t.Helper()
	app := fiber.New()
	h := NewHandler(nil, store)
	app.Post("/notebook", h.HandleSave)

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/notebook", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeErrorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var payload struct {
		Error     string `json:"error"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.ErrorCode
}

func saveBody() notebook.DictEntry {
	return notebook.DictEntry{
		ID:         "id-hola",
		SourceTerm: "hola",
		SourceLang: "Spanish",
		TargetLang: "English",
		TargetTerm: "hello",
	}
}

func TestHandleSave_OK(t *testing.T) {
	store := &stubStore{}
	resp := postSave(t, store, saveBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(store.saved) != 1 || store.saved[0].SourceTerm != "hola" {
		t.Errorf("entry not persisted: %+v", store.saved)
	}
}

func TestHandleSave_DuplicateIsBadRequest(t *testing.T) {
	store := &stubStore{saveErr: fmt.Errorf("%w for %q", notebook.ErrDuplicate, "hola")}
	resp := postSave(t, store, saveBody())
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	want := fmt.Sprintf("AI-%d", status.NotebookDuplicateEntry)
	if got := decodeErrorCode(t, resp); got != want {
		t.Errorf("error_code = %q, want %q", got, want)
	}
}

func TestHandleSave_StoreFailureIsInternal(t *testing.T) {
	// a database outage must not be reported as a duplicate
	store := &stubStore{saveErr: errors.New("dial tcp 127.0.0.1:3306: connection refused")}
	resp := postSave(t, store, saveBody())
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	want := fmt.Sprintf("AI-%d", status.NotebookWriteFailed)
	if got := decodeErrorCode(t, resp); got != want {
		t.Errorf("error_code = %q, want %q", got, want)
	}
}

func TestHandleSave_MissingFields(t *testing.T) {
	store := &stubStore{}
	resp := postSave(t, store, notebook.DictEntry{SourceTerm: "hola"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(store.saved) != 0 {
		t.Error("incomplete entry was persisted")
	}
}
