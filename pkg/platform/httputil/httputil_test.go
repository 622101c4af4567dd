package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "onboard/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error hides message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("pq: connection reset"), dErrors.CodeInternal, "db failed"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "internal server error", body.Error)
		assert.Equal(t, "internal_error", body.Code)
	})

	t.Run("expired invite maps to gone", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInviteExpired, "invite has expired"))

		require.Equal(t, http.StatusGone, w.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "invite has expired", body.Error)
	})

	t.Run("onboarding taxonomy statuses", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, StatusFor(dErrors.CodeInvalidToken))
		assert.Equal(t, http.StatusBadRequest, StatusFor(dErrors.CodeMissingClientContext))
		assert.Equal(t, http.StatusBadRequest, StatusFor(dErrors.CodeUnsupportedEntityType))
		assert.Equal(t, http.StatusUnauthorized, StatusFor(dErrors.CodeUnauthorized))
		assert.Equal(t, http.StatusNotFound, StatusFor(dErrors.CodeNotFound))
		assert.Equal(t, http.StatusConflict, StatusFor(dErrors.CodeConflict))
	})
}
