package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gift-link/app/database"
	"gift-link/app/internal/models"
	"gift-link/app/internal/services"
	"gift-link/shared/logger"
)

type stubRequestStore struct {
	requests map[string]models.Request
	err      error
}

func (s *stubRequestStore) Save(req *models.Request) error {
	s.requests[req.Token] = *req
	return nil
}

func (s *stubRequestStore) GetByToken(token string) (*models.Request, error) {
	if s.err != nil {
		return nil, s.err
	}
	req, ok := s.requests[token]
	if !ok {
		return nil, services.ErrRequestNotFound
	}
	return &req, nil
}

func newTestRouter(t *testing.T, store services.RequestStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.NewLogger(logger.Config{Level: "error"})
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router, log)
	RegisterAPIRoutes(router, log)
	RegisterLinkRoutes(router, log, store, "https://gift.example.com")
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestResolve_FoundStars(t *testing.T) {
	store := &stubRequestStore{requests: map[string]models.Request{
		"Ab3dEf6hIj9kLm": {
			Token: "Ab3dEf6hIj9kLm",
			Type:  models.RequestTypeStars,
			Value: "42",
			Link:  "https://gift.example.com/link/Ab3dEf6hIj9kLm",
		},
	}}
	router := newTestRouter(t, store)

	w := get(router, "/link/Ab3dEf6hIj9kLm")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "42 ⭐")
	require.Contains(t, w.Body.String(), "https://gift.example.com/link/Ab3dEf6hIj9kLm")
	require.Contains(t, w.Body.String(), "Copy link")
}

func TestResolve_FoundNFT(t *testing.T) {
	store := &stubRequestStore{requests: map[string]models.Request{
		"tok": {
			Token: "tok",
			Type:  models.RequestTypeNFT,
			Value: "https://example.com/nft/7",
			Link:  "https://gift.example.com/link/tok",
		},
	}}
	router := newTestRouter(t, store)

	w := get(router, "/link/tok")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "https://example.com/nft/7")
	require.NotContains(t, w.Body.String(), "⭐")
}

func TestResolve_UnknownToken(t *testing.T) {
	store := &stubRequestStore{requests: map[string]models.Request{}}
	router := newTestRouter(t, store)

	w := get(router, "/link/never-issued")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Link not found")
}

func TestResolve_StoreError(t *testing.T) {
	store := &stubRequestStore{err: errors.New("connection refused")}
	router := newTestRouter(t, store)

	w := get(router, "/link/tok")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Something went wrong")
}

func TestResolve_DegradedMode(t *testing.T) {
	router := newTestRouter(t, nil)

	w := get(router, "/link/SomeTokenValue")

	// No lookup happens; the page still shows the constructible URL.
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "https://gift.example.com/link/SomeTokenValue")
}

// Round-trip: a request issued through the flow resolves to a page
// carrying the value's display form.
func TestRoundTrip_FlowToPage(t *testing.T) {
	log, err := logger.NewLogger(logger.Config{Level: "error"})
	require.NoError(t, err)

	requests := database.NewMemoryRequestStore()
	flow := services.NewLinkFlow(
		1001,
		"https://gift.example.com",
		services.NewTokenGenerator(),
		database.NewMemoryUserStore(),
		database.NewMemoryStateStore(),
		requests,
		log,
	)
	router := newTestRouter(t, requests)

	ownerUser := &models.User{ID: 1001, Username: "owner"}
	require.Equal(t, services.OutcomePrompted, flow.HandleTrigger(ownerUser).Outcome)
	res := flow.HandleText(ownerUser, "42")
	require.Equal(t, services.OutcomeIssued, res.Outcome)

	w := get(router, "/link/"+res.Request.Token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "42 ⭐")
	require.Contains(t, w.Body.String(), res.Link)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := get(router, "/api/v1/health")

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ok")
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := get(router, "/")

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(router, "/")
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A client-supplied ID is passed through.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
