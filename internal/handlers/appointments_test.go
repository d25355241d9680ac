package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/schedule"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// A duplicate-key violation on insert means a concurrent caller took the slot
// after our availability check read its snapshot. That must surface as a
// booking conflict the client can retry, never as a store outage.
func TestBookingWriteError_DuplicateSlot(t *testing.T) {
	err := bookingWriteError(gorm.ErrDuplicatedKey)

	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "time", conflict.Field)
}

func TestBookingWriteError_WrappedDuplicate(t *testing.T) {
	err := bookingWriteError(fmt.Errorf("create appointment: %w", gorm.ErrDuplicatedKey))

	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestBookingWriteError_StoreFailure(t *testing.T) {
	err := bookingWriteError(errors.New("connection reset"))
	require.ErrorIs(t, err, schedule.ErrStoreUnavailable)
}

func TestRespondBookingError_DuplicateSlotIsConflict(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBookingError(c, bookingWriteError(gorm.ErrDuplicatedKey))

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondBookingError_StoreFailureIsUnavailable(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBookingError(c, bookingWriteError(errors.New("connection reset")))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRespondBookingError_ValidationIsBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondBookingError(c, &schedule.ValidationError{
		Fields: map[string]string{"doctorId": "doctor is required"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}
