package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/service"
	"github.com/foresightmx/foresight/internal/state"
	"github.com/foresightmx/foresight/internal/testutil"
)

type testServer struct {
	echo     *echo.Echo
	store    *testutil.MockProfileStore
	auth     *testutil.MockAuthenticator
	sessions *SessionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := testutil.NewMockProfileStore()
	auth := testutil.NewMockAuthenticator()
	tracker := service.NewExpenseTracker(store, auth, category.Builtin(), nil)

	e := echo.New()
	sessions := NewSessionManager()
	RegisterRoutes(e, tracker, sessions)
	return &testServer{echo: e, store: store, auth: auth, sessions: sessions}
}

func (s *testServer) signedInSession(t *testing.T) *Session {
	t.Helper()
	s.auth.Passwords["ana@example.com"] = "secret123"
	s.store.AddProfile(model.NewProfile("ana@example.com", "Ana", "García"))

	p, err := s.store.FetchProfile(context.Background(), "ana@example.com")
	require.NoError(t, err)
	return s.sessions.Create(state.FromProfile(p, time.Now()), "access-token")
}

func (s *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestSignIn_Success(t *testing.T) {
	srv := newTestServer(t)
	srv.auth.Passwords["ana@example.com"] = "secret123"
	srv.store.AddProfile(model.NewProfile("ana@example.com", "Ana", "García"))

	rec := srv.do(http.MethodPost, "/api/auth/signin", "", `{"email":"ana@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.Equal(t, "Ana García", resp.DisplayName)
}

func TestSignIn_WrongPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.auth.Passwords["ana@example.com"] = "secret123"
	srv.store.AddProfile(model.NewProfile("ana@example.com", "Ana", "García"))

	rec := srv.do(http.MethodPost, "/api/auth/signin", "", `{"email":"ana@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignIn_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/auth/signin", "", `{"email":"","password":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUp_ConfirmationPending(t *testing.T) {
	srv := newTestServer(t)
	srv.auth.Unconfirmed = true

	rec := srv.do(http.MethodPost, "/api/auth/signup", "", `{"email":"nuevo@example.com","password":"secret123","firstName":"Nuevo","lastName":"Usuario"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp signupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.ConfirmationRequired)
	assert.Nil(t, resp.Session)
}

func TestAuthenticatedRoutes_RejectMissingToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/summary", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRoutes_RejectUnknownToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/summary", "no-such-token", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaveTransaction_Create(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"150","type":"expense","category":"comida","concept":"Tacos","date":"2024-03-10"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var saved model.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.NotZero(t, saved.ID)
	assert.Len(t, sess.State.Transactions, 1)
	assert.Equal(t, 1, srv.store.SaveCalls)
}

func TestSaveTransaction_InvalidAmount(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"abc","type":"expense","date":"2024-03-10"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, srv.store.SaveCalls)
}

func TestSaveTransaction_ConflictWhileMutationInFlight(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	require.True(t, sess.TryAcquire())
	defer sess.Release()

	rec := srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"150","type":"expense","date":"2024-03-10"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, sess.State.Transactions)
}

func TestSaveTransaction_StorageFailureRollsBack(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)
	srv.store.FailSaves = true

	rec := srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"150","type":"expense","date":"2024-03-10"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, sess.State.Transactions)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodDelete, "/api/transactions/999", sess.Token, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTransaction_Success(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	create := srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"150","type":"expense","date":"2024-03-10"}`)
	require.Equal(t, http.StatusOK, create.Code)
	var saved model.Transaction
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &saved))

	rec := srv.do(http.MethodDelete, "/api/transactions/"+strconv.FormatInt(saved.ID, 10), sess.Token, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, sess.State.Transactions)
}

func TestList_FilterQueryParam(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	require.Equal(t, http.StatusOK, srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"150","type":"expense","category":"comida","date":"2024-03-10"}`).Code)
	require.Equal(t, http.StatusOK, srv.do(http.MethodPut, "/api/transactions", sess.Token,
		`{"amount":"500","type":"income","category":"sueldo","date":"2024-03-12"}`).Code)

	rec := srv.do(http.MethodGet, "/api/transactions?year=2024&month=3&filter=income", sess.Token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp transactionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "Sueldo", resp.Transactions[0].CategoryLabel)
}

func TestList_StepMovesMonthCursor(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)
	sess.State.SetView(2024, time.March)

	rec := srv.do(http.MethodGet, "/api/transactions?step=-1", sess.Token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp transactionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 2, resp.Month)
}

func TestList_InvalidMonth(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodGet, "/api/transactions?year=2024&month=13", sess.Token, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetBudget_InvalidValue(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodPut, "/api/budget", sess.Token, `{"budget":"not-a-number"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetBudget_Success(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodPut, "/api/budget", sess.Token, `{"budget":"800"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "800", sess.State.Budget.String())
}

func TestConcurrentViewsAndMutations(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	// Saves and view reads on one session must interleave cleanly: views
	// move the month cursor and walk the collection while saves swap it.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			srv.do(http.MethodPut, "/api/transactions", sess.Token,
				`{"amount":"10","type":"expense","date":"2024-03-10"}`)
		}()
		go func() {
			defer wg.Done()
			srv.do(http.MethodGet, "/api/transactions?step=1", sess.Token, "")
		}()
	}
	wg.Wait()

	rec := srv.do(http.MethodGet, "/api/summary", sess.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessions_ExpireWhenIdle(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	current := time.Now()
	srv.sessions.now = func() time.Time { return current }
	_, ok := srv.sessions.Get(sess.Token)
	require.True(t, ok)

	current = current.Add(sessionIdleTTL + time.Minute)

	rec := srv.do(http.MethodGet, "/api/summary", sess.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, ok = srv.sessions.Get(sess.Token)
	assert.False(t, ok)
}

func TestSessions_CreateSweepsIdleEntries(t *testing.T) {
	sessions := NewSessionManager()
	current := time.Now()
	sessions.now = func() time.Time { return current }

	stale := sessions.Create(&state.AppState{}, "")
	current = current.Add(sessionIdleTTL + time.Minute)
	fresh := sessions.Create(&state.AppState{}, "")

	if _, ok := sessions.Get(stale.Token); ok {
		t.Errorf("expected the idle session swept on create")
	}
	if _, ok := sessions.Get(fresh.Token); !ok {
		t.Errorf("expected the fresh session kept")
	}
}

func TestSignOut_DropsSession(t *testing.T) {
	srv := newTestServer(t)
	sess := srv.signedInSession(t)

	rec := srv.do(http.MethodPost, "/api/auth/signout", sess.Token, "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := srv.sessions.Get(sess.Token)
	assert.False(t, ok)
	assert.Equal(t, []string{"access-token"}, srv.auth.SignOutCalls)
}
