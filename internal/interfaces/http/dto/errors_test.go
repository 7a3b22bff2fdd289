package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeImportNotFound, http.StatusNotFound},
		{ErrCodeImportAlreadyUndone, http.StatusConflict},
		{ErrCodeImportNotUndoable, http.StatusConflict},
		{ErrCodeImportNothingToUndo, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeImportAlreadyUndone, NormalizeErrorCode("ALREADY_UNDONE"))
	assert.Equal(t, ErrCodeUnauthorized, NormalizeErrorCode("INVALID_CREDENTIALS"))
	// Unmapped domain codes reject bad input
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_PRICE"))
}

func TestSuccessResponseMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Project not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
