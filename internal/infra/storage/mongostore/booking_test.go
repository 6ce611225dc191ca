package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestBookingDocument_RoundTrip(t *testing.T) {
	cancelledAt := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:          "b-1",
		CustomerID:  "u-1",
		ServiceID:   "svc-1",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:30",
		EndTime:     "10:15",
		Status:      domain.StatusCancelled,
		Notes:       ptr.Ptr("window seat"),
		CancelledAt: &cancelledAt,
	}

	doc := toBookingDocument(b)
	assert.Equal(t, "2025-06-10", doc.Date)
	assert.False(t, doc.Active, "cancelled booking must not occupy the slot index")

	back, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestBookingDocument_ActiveFlag(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed} {
		doc := toBookingDocument(&domain.Booking{Status: status, Date: time.Now()})
		assert.True(t, doc.Active, status)
	}
}

func TestBookingQuery(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	query := bookingQuery(domain.DayFilter("svc-1", date))

	assert.Equal(t, bson.M{
		"service_id": "svc-1",
		"date":       "2025-06-10",
		"status":     bson.M{"$in": []string{"pending", "confirmed"}},
	}, query)

	assert.Empty(t, bookingQuery(domain.BookingsFilter{}))
}
