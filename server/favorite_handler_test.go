package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SqueezeFM/core/auth"
	"SqueezeFM/model"
)

// stubFavoriteRepo records adds and can fail a chosen track ID.
type stubFavoriteRepo struct {
	added     [][2]int64
	failTrack int64
	favorited map[int64]bool
}

func (s *stubFavoriteRepo) IsFavorited(userID, trackID int64) (bool, error) {
	return s.favorited[trackID], nil
}

func (s *stubFavoriteRepo) AddFavorite(userID, trackID int64) error {
	if s.failTrack != 0 && trackID == s.failTrack {
		return errors.New("insert failed")
	}
	s.added = append(s.added, [2]int64{userID, trackID})
	return nil
}

func (s *stubFavoriteRepo) RemoveFavorite(userID, trackID int64) error { return nil }

func (s *stubFavoriteRepo) ListFavorites(userID int64) ([]model.FavoriteWithBundle, error) {
	return nil, nil
}

// stubPendingStore keeps pending sets in memory.
type stubPendingStore struct {
	pending map[string][]int64
	cleared []string
}

func (s *stubPendingStore) AddPendingFavorite(ctx context.Context, clientID string, trackID int64) error {
	if s.pending == nil {
		s.pending = make(map[string][]int64)
	}
	s.pending[clientID] = append(s.pending[clientID], trackID)
	return nil
}

func (s *stubPendingStore) GetPendingFavorites(ctx context.Context, clientID string) ([]int64, error) {
	return s.pending[clientID], nil
}

func (s *stubPendingStore) ClearPendingFavorites(ctx context.Context, clientID string) error {
	s.cleared = append(s.cleared, clientID)
	return nil
}

func testFavoriteHandler(favRepo *stubFavoriteRepo, pending *stubPendingStore) *APIHandler {
	return NewAPIHandler(nil, nil, nil, favRepo, nil, nil, pending, NewCatalogHub(), testConfig())
}

func authedContext(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), "userID", userID)
	return r.WithContext(ctx)
}

func TestAddFavoriteAnonymousParksPending(t *testing.T) {
	favRepo := &stubFavoriteRepo{}
	pending := &stubPendingStore{}
	h := testFavoriteHandler(favRepo, pending)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"trackId":42}`))
	req.Header.Set("X-Client-Id", "client-1")
	w := httptest.NewRecorder()
	h.AddFavoriteHandler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["clientId"] != "client-1" {
		t.Errorf("clientId = %q, want client-1", resp["clientId"])
	}
	if resp["loginUrl"] != "/login" {
		t.Errorf("loginUrl = %q", resp["loginUrl"])
	}
	if got := pending.pending["client-1"]; len(got) != 1 || got[0] != 42 {
		t.Errorf("pending set = %v, want [42]", got)
	}
	if len(favRepo.added) != 0 {
		t.Errorf("anonymous add reached the favorites relation: %v", favRepo.added)
	}
}

func TestAddFavoriteAnonymousIssuesClientID(t *testing.T) {
	pending := &stubPendingStore{}
	h := testFavoriteHandler(&stubFavoriteRepo{}, pending)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"trackId":7}`))
	w := httptest.NewRecorder()
	h.AddFavoriteHandler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	clientID := resp["clientId"]
	if clientID == "" {
		t.Fatal("no clientId issued for anonymous add")
	}
	if got := pending.pending[clientID]; len(got) != 1 || got[0] != 7 {
		t.Errorf("pending set for issued client = %v, want [7]", got)
	}
}

func TestAddFavoriteAuthenticated(t *testing.T) {
	auth.InitJWT("favorite-test-secret")
	token, err := auth.GenerateToken(9, "mira")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	favRepo := &stubFavoriteRepo{}
	pending := &stubPendingStore{}
	h := testFavoriteHandler(favRepo, pending)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"trackId":42}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.AddFavoriteHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(favRepo.added) != 1 || favRepo.added[0] != [2]int64{9, 42} {
		t.Errorf("added = %v, want [[9 42]]", favRepo.added)
	}
	if len(pending.pending) != 0 {
		t.Errorf("authenticated add parked in pending: %v", pending.pending)
	}
}

func TestReconcileFavoritesMergesAndClears(t *testing.T) {
	favRepo := &stubFavoriteRepo{}
	pending := &stubPendingStore{pending: map[string][]int64{"client-1": {3, 4}}}
	h := testFavoriteHandler(favRepo, pending)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites/reconcile", strings.NewReader(`{"clientId":"client-1"}`))
	req = authedContext(req, 7)
	w := httptest.NewRecorder()
	h.ReconcileFavoritesHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["merged"] != 2 {
		t.Errorf("merged = %d, want 2", resp["merged"])
	}
	want := [][2]int64{{7, 3}, {7, 4}}
	if len(favRepo.added) != 2 || favRepo.added[0] != want[0] || favRepo.added[1] != want[1] {
		t.Errorf("added = %v, want %v", favRepo.added, want)
	}
	if len(pending.cleared) != 1 || pending.cleared[0] != "client-1" {
		t.Errorf("cleared = %v, want [client-1]", pending.cleared)
	}
}

func TestReconcileFavoritesSkipsFailedMerge(t *testing.T) {
	favRepo := &stubFavoriteRepo{failTrack: 3}
	pending := &stubPendingStore{pending: map[string][]int64{"client-1": {3, 4}}}
	h := testFavoriteHandler(favRepo, pending)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites/reconcile", strings.NewReader(`{"clientId":"client-1"}`))
	req = authedContext(req, 7)
	w := httptest.NewRecorder()
	h.ReconcileFavoritesHandler(w, req)

	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["merged"] != 1 {
		t.Errorf("merged = %d, want 1", resp["merged"])
	}
	if len(pending.cleared) != 1 {
		t.Errorf("pending set not cleared after partial merge: %v", pending.cleared)
	}
}

func TestReconcileFavoritesRequiresClientID(t *testing.T) {
	h := testFavoriteHandler(&stubFavoriteRepo{}, &stubPendingStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/favorites/reconcile", strings.NewReader(`{}`))
	req = authedContext(req, 7)
	w := httptest.NewRecorder()
	h.ReconcileFavoritesHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
