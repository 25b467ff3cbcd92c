package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"
)

func respond(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, err))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func Test_respondError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{errs.NewObjectNotFoundError("order", "ORD-1042"), http.StatusNotFound, ""},
		{errs.NewTransientStoreError("get order", fmt.Errorf("lock timeout")), http.StatusServiceUnavailable, "contended"},
		{order.ErrAlreadyTaken, http.StatusBadRequest, "already_taken"},
		{order.ErrNotCancellable, http.StatusBadRequest, "not_cancellable"},
		{order.ErrIllegalTransition, http.StatusBadRequest, "illegal_transition"},
		{order.ErrNotAssignedDriver, http.StatusForbidden, ""},
		{commands.ErrPermissionDenied, http.StatusForbidden, ""},
		{commands.ErrActorIsNotDriver, http.StatusForbidden, ""},
		{queries.ErrNotAllowedToView, http.StatusForbidden, ""},
		{queries.ErrActorIsNotAdmin, http.StatusForbidden, ""},
		{errs.NewValueIsRequiredError("pickup time"), http.StatusBadRequest, "validation"},
		{commands.ErrServiceIsNotActive, http.StatusBadRequest, "validation"},
		{fmt.Errorf("database on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, body := respond(t, tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}

func Test_respondError_WrappedErrorsStillMap(t *testing.T) {
	status, body := respond(t, fmt.Errorf("accept job: %w", order.ErrAlreadyTaken))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "already_taken", body.Reason)
}
