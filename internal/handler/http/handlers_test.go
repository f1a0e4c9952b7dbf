package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facetrack-hrm/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithID builds a request whose chi route context carries the given
// {id} URL parameter, the way the router would after matching.
func requestWithID(method, target, id string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// The id checks reject malformed ids before the service is consulted, so a
// nil service is safe here.

func TestAttendanceHandler_GetAttendance_RejectsMalformedID(t *testing.T) {
	handler := NewAttendanceHandler(nil)

	for _, id := range []string{"not-a-uuid", "123", "9f8e7d6c-0000-0000-0000"} {
		rec := httptest.NewRecorder()
		handler.GetAttendance(rec, requestWithID(http.MethodGet, "/attendances/"+id, id))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		assert.Equal(t, "Invalid attendance ID", resp.Error.Message)
	}
}

func TestAttendanceHandler_DeleteAttendance_RejectsMalformedID(t *testing.T) {
	handler := NewAttendanceHandler(nil)

	rec := httptest.NewRecorder()
	handler.DeleteAttendance(rec, requestWithID(http.MethodDelete, "/attendances/abc", "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid attendance ID", resp.Error.Message)
}

func TestSalaryHandler_DeleteSalary_RejectsMalformedID(t *testing.T) {
	handler := NewSalaryHandler(nil)

	rec := httptest.NewRecorder()
	handler.DeleteSalary(rec, requestWithID(http.MethodDelete, "/salaries/abc", "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid salary ID", resp.Error.Message)
}
