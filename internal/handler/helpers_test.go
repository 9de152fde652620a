package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/campus-bookings/internal/auth"
	"github.com/sakif/campus-bookings/internal/handler"
	"github.com/sakif/campus-bookings/internal/repository/sqlite"
	"github.com/sakif/campus-bookings/internal/service"
)

// testEnv wires real services over an in-memory store, so handler tests
// exercise the same code paths as production minus the network listener.
type testEnv struct {
	accounts     *handler.AccountHandler
	availability *handler.AvailabilityHandler
	bookings     *handler.BookingHandler
	directory    *handler.DirectoryHandler
	tokens       *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := auth.NewTokenService("test-secret-test-secret-test-1234")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(4)

	accountSvc := service.NewAccountService(db, passwords, logger)
	directorySvc := service.NewDirectoryService(db, logger)
	availabilitySvc := service.NewAvailabilityService(db, db, db, logger)
	bookingSvc := service.NewBookingService(db, db, logger)

	return &testEnv{
		accounts:     handler.NewAccountHandler(accountSvc, tokens, logger),
		availability: handler.NewAvailabilityHandler(availabilitySvc, logger),
		bookings:     handler.NewBookingHandler(bookingSvc, logger),
		directory:    handler.NewDirectoryHandler(directorySvc, logger),
		tokens:       tokens,
	}
}

// postJSON runs a handler against a JSON body and returns the recorder.
func postJSON(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// newGetRequest builds a plain GET request and a recorder for it.
func newGetRequest(path string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder()
}

// getWithParam runs a handler against a GET request carrying one path value.
func getWithParam(h http.HandlerFunc, path, key, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// register creates an account through the HTTP handler and returns its ID.
func register(t *testing.T, env *testEnv, username string, isProfessor bool) string {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"username":    username,
		"password":    "pw-" + username,
		"isProfessor": isProfessor,
	})
	require.NoError(t, err)

	rr := postJSON(env.accounts.HandleRegister, "/register", string(body))
	require.Equal(t, http.StatusCreated, rr.Code, "register %s: %s", username, rr.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

// publish opens a slot through the HTTP handler.
func publish(t *testing.T, env *testEnv, professorID, meetingTime string) {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"professorId": professorID,
		"meetingTime": meetingTime,
	})
	require.NoError(t, err)

	rr := postJSON(env.availability.HandlePublish, "/availability", string(body))
	require.Equal(t, http.StatusCreated, rr.Code, "publish: %s", rr.Body.String())
}

// book creates an appointment through the HTTP handler, returning the recorder
// so callers can assert conflicts as well as successes.
func book(t *testing.T, env *testEnv, studentID, professorID, timeSlot string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"studentId":   studentID,
		"professorId": professorID,
		"timeSlot":    timeSlot,
	})
	require.NoError(t, err)

	return postJSON(env.bookings.HandleBook, "/appointments", string(body))
}
