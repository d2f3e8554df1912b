package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"refdata/internal/domain"
	refentityrepo "refdata/internal/repository/refentity"
	refentitysvc "refdata/internal/service/refentity"
)

// stubRepo is an in-memory refentity.Repository.
type stubRepo struct {
	entities    map[string][]domain.Entity
	reorderedTo []string
	err         error
}

func newStubRepo() *stubRepo {
	return &stubRepo{entities: make(map[string][]domain.Entity)}
}

func (s *stubRepo) List(_ context.Context, collection string) ([]domain.Entity, error) {
	return s.entities[collection], s.err
}

func (s *stubRepo) Get(_ context.Context, collection, id string) (*domain.Entity, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, e := range s.entities[collection] {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) Upsert(_ context.Context, collection string, e domain.Entity) (*domain.Entity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if e.ID == "" {
		e.ID = "assigned-id"
	}
	recs := s.entities[collection]
	for i := range recs {
		if recs[i].ID == e.ID {
			recs[i] = e
			return &e, nil
		}
	}
	s.entities[collection] = append(recs, e)
	return &e, nil
}

func (s *stubRepo) Delete(_ context.Context, collection, id string) error {
	return s.err
}

func (s *stubRepo) Reorder(_ context.Context, collection string, ids []string) error {
	if s.err != nil {
		return s.err
	}
	s.reorderedTo = ids
	return nil
}

var _ refentityrepo.Repository = (*stubRepo)(nil)

func newTestRouter(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(zerolog.Nop(), nil, Deps{RefSvc: refentitysvc.New(repo)})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListEntities_EmptyCollectionIsJSONArray(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodGet, "/api/statuses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestListEntities_UnknownCollectionIs404(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodGet, "/api/unicorns", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateEntity_MintsIdAndReturns201(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(t, repo)

	rec := doRequest(router, http.MethodPost, "/api/departments", `{"title":"Engineering"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var got domain.Entity
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID == "" || got.Title != "Engineering" {
		t.Fatalf("unexpected entity %+v", got)
	}
	if got.CreatedAt == "" || got.UpdatedAt == "" {
		t.Fatalf("timestamps not stamped: %+v", got)
	}
}

func TestCreateEntity_BlankTitleIs400(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(t, repo)

	rec := doRequest(router, http.MethodPost, "/api/vcs", `{"title":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(repo.entities["vcs"]) != 0 {
		t.Fatalf("entity persisted despite validation failure: %+v", repo.entities)
	}
}

func TestUpdateEntity_UsesPathId(t *testing.T) {
	repo := newStubRepo()
	repo.entities["statuses"] = []domain.Entity{{ID: "st-1", Title: "New"}}
	router := newTestRouter(t, repo)

	rec := doRequest(router, http.MethodPut, "/api/statuses/st-1", `{"title":"Contacted"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var got domain.Entity
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "st-1" || got.Title != "Contacted" {
		t.Fatalf("unexpected entity %+v", got)
	}
}

func TestGetEntity_AbsentIs404(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodGet, "/api/statuses/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteEntity_AbsentStillSucceeds(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodDelete, "/api/statuses/missing", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestReorder_PassesIdsInOrder(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(t, repo)

	body := `[{"id":"c","title":"C"},{"id":"a","title":"A"},{"id":"b","title":"B"}]`
	rec := doRequest(router, http.MethodPost, "/api/engagementLevels/positions", body)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
	want := []string{"c", "a", "b"}
	if len(repo.reorderedTo) != len(want) {
		t.Fatalf("unexpected ids %v", repo.reorderedTo)
	}
	for i := range want {
		if repo.reorderedTo[i] != want[i] {
			t.Fatalf("unexpected ids %v", repo.reorderedTo)
		}
	}
}

func TestReorder_ItemWithoutIdIs400(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodPost, "/api/statuses/positions", `[{"title":"no id"}]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, newStubRepo())

	rec := doRequest(router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
