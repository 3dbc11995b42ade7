package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail bool
	}{
		{name: "not found", err: fmt.Errorf("lookup: %w", ErrNotFound), wantStatus: http.StatusNotFound, wantDetail: true},
		{name: "validation", err: fmt.Errorf("%w: bad json", ErrValidation), wantStatus: http.StatusBadRequest, wantDetail: true},
		{name: "too large", err: fmt.Errorf("%w: %w", ErrValidation, &http.MaxBytesError{Limit: 10}), wantStatus: http.StatusRequestEntityTooLarge, wantDetail: true},
		{name: "internal", err: errors.New("db password wrong"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, problemContentType, rr.Header().Get("Content-Type"))
			if tt.wantDetail {
				assert.Contains(t, rr.Body.String(), `"detail"`)
			} else {
				assert.NotContains(t, rr.Body.String(), "password")
			}
		})
	}
}
