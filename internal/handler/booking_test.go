package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_HandleBook(t *testing.T) {
	t.Run("books a published slot", func(t *testing.T) {
		env := newTestEnv(t)
		profID := register(t, env, "drsmith", true)
		studentID := register(t, env, "alice", false)
		publish(t, env, profID, "2024-05-01T10:00")

		rr := book(t, env, studentID, profID, "2024-05-01T10:00")

		assert.Equal(t, http.StatusCreated, rr.Code)

		var body map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.NotEmpty(t, body["appointmentId"])
		assert.Equal(t, studentID, body["studentId"])
		assert.Equal(t, profID, body["professorId"])
		assert.Equal(t, "2024-05-01T10:00", body["timeSlot"])
	})

	t.Run("second booking conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		profID := register(t, env, "drsmith", true)
		alice := register(t, env, "alice", false)
		bob := register(t, env, "bob", false)
		publish(t, env, profID, "2024-05-01T10:00")

		first := book(t, env, alice, profID, "2024-05-01T10:00")
		require.Equal(t, http.StatusCreated, first.Code)

		second := book(t, env, bob, profID, "2024-05-01T10:00")
		assert.Equal(t, http.StatusConflict, second.Code)

		var errBody map[string]string
		require.NoError(t, json.NewDecoder(second.Body).Decode(&errBody))
		assert.Equal(t, "conflict", errBody["error"])

		// The loser's appointment list stays empty.
		rr := getWithParam(env.bookings.HandleListForStudent, "/appointments/"+bob, "userId", bob)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("unpublished time is not found", func(t *testing.T) {
		env := newTestEnv(t)
		profID := register(t, env, "drsmith", true)
		studentID := register(t, env, "alice", false)
		publish(t, env, profID, "2024-05-01T10:00")

		rr := book(t, env, studentID, profID, "2024-05-01T23:59")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		env := newTestEnv(t)

		rr := postJSON(env.bookings.HandleBook, "/appointments", `{`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing studentId", func(t *testing.T) {
		env := newTestEnv(t)
		profID := register(t, env, "drsmith", true)
		publish(t, env, profID, "2024-05-01T10:00")

		rr := postJSON(env.bookings.HandleBook, "/appointments",
			`{"professorId":"`+profID+`","timeSlot":"2024-05-01T10:00"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBookingHandler_HandleListForStudent(t *testing.T) {
	t.Run("lists only the student's appointments", func(t *testing.T) {
		env := newTestEnv(t)
		profID := register(t, env, "drsmith", true)
		alice := register(t, env, "alice", false)
		bob := register(t, env, "bob", false)
		publish(t, env, profID, "2024-05-01T10:00")
		publish(t, env, profID, "2024-05-01T11:00")

		require.Equal(t, http.StatusCreated, book(t, env, alice, profID, "2024-05-01T10:00").Code)
		require.Equal(t, http.StatusCreated, book(t, env, bob, profID, "2024-05-01T11:00").Code)

		rr := getWithParam(env.bookings.HandleListForStudent, "/appointments/"+alice, "userId", alice)
		assert.Equal(t, http.StatusOK, rr.Code)

		var appts []struct {
			StudentID string `json:"studentId"`
			TimeSlot  string `json:"timeSlot"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&appts))
		require.Len(t, appts, 1)
		assert.Equal(t, alice, appts[0].StudentID)
		assert.Equal(t, "2024-05-01T10:00", appts[0].TimeSlot)
	})

	t.Run("empty for a student with no bookings", func(t *testing.T) {
		env := newTestEnv(t)
		studentID := register(t, env, "alice", false)

		rr := getWithParam(env.bookings.HandleListForStudent, "/appointments/"+studentID, "userId", studentID)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}
