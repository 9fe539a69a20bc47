package store

import (
	"testing"

	"carrental-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	s := NewStore()

	assert.NotEmpty(t, s.Vehicles(""))
	assert.NotEmpty(t, s.Locations())
	assert.NotEmpty(t, s.Offers())
	assert.NotEmpty(t, s.Clients())
	assert.Empty(t, s.Bookings(""))

	_, err := s.LocationByID(s.DefaultLocationID())
	assert.NoError(t, err)
}

func TestVehicleCRUD(t *testing.T) {
	s := NewStore()

	created := s.VehicleCreate(models.VehicleCreate{
		Name:      "Bentley Bentayga",
		Category:  models.VehicleCategoryLuxury,
		DailyRate: 3500,
		Seats:     5,
	})
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.VehicleStatusAvailable, created.Status)

	found, err := s.VehicleByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bentley Bentayga", found.Name)

	newRate := 3200.0
	updated, err := s.VehicleUpdate(created.ID, models.VehicleUpdate{DailyRate: &newRate})
	require.NoError(t, err)
	assert.Equal(t, 3200.0, updated.DailyRate)
	assert.Equal(t, "Bentley Bentayga", updated.Name)

	require.NoError(t, s.VehicleDelete(created.ID))
	_, err = s.VehicleByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.VehicleDelete(created.ID), ErrNotFound)
}

func TestVehicleCategoryFilter(t *testing.T) {
	s := NewStore()

	suvs := s.Vehicles(models.VehicleCategorySUV)
	require.NotEmpty(t, suvs)
	for _, v := range suvs {
		assert.Equal(t, models.VehicleCategorySUV, v.Category)
	}
}

func TestBookingAddCreatesClient(t *testing.T) {
	s := NewStore()
	clientsBefore := len(s.Clients())

	booking := s.BookingAdd(models.Booking{
		Code:        "#AERO-5521",
		VehicleID:   1,
		VehicleName: "Range Rover Sport",
		Location:    "casablanca-airport",
		Guest:       models.GuestInfo{FirstName: "Omar", LastName: "Idrissi", Email: "omar@example.com"},
		Total:       6045,
		Status:      models.BookingStatusConfirmed,
	})
	assert.NotZero(t, booking.ID)

	found, err := s.BookingByCode("#AERO-5521")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)

	// Новый гость становится клиентом с одним бронированием
	clients := s.Clients()
	require.Len(t, clients, clientsBefore+1)
	last := clients[len(clients)-1]
	assert.Equal(t, "omar@example.com", last.Email)
	assert.Equal(t, 1, last.BookingsCount)
}

func TestBookingAddIncrementsExistingClient(t *testing.T) {
	s := NewStore()
	clientsBefore := len(s.Clients())

	guest := models.GuestInfo{FirstName: "Yassine", LastName: "Benali", Email: "y.benali@example.com"}
	s.BookingAdd(models.Booking{Code: "#AERO-1111", Guest: guest, Status: models.BookingStatusConfirmed})

	// Повторное бронирование того же гостя не создает дубликат клиента
	assert.Len(t, s.Clients(), clientsBefore)
	for _, c := range s.Clients() {
		if c.Email == guest.Email {
			assert.Equal(t, 4, c.BookingsCount)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	s := NewStore()

	b := s.BookingAdd(models.Booking{Code: "#AERO-2222", Status: models.BookingStatusConfirmed})

	updated, err := s.BookingUpdateStatus(b.ID, models.BookingStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusActive, updated.Status)

	active := s.Bookings(models.BookingStatusActive)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	require.NoError(t, s.BookingDelete(b.ID))
	assert.ErrorIs(t, s.BookingDelete(b.ID), ErrNotFound)
}

func TestReviewModeration(t *testing.T) {
	s := NewStore()

	published := s.Reviews(true)
	all := s.Reviews(false)
	assert.Greater(t, len(all), len(published))

	created := s.ReviewCreate(models.ReviewCreate{ClientName: "Omar I.", Rating: 5, Comment: "Все отлично"})
	assert.False(t, created.Published)

	// Новый отзыв не виден на сайте до публикации
	assert.Len(t, s.Reviews(true), len(published))

	moderated, err := s.ReviewSetPublished(created.ID, true)
	require.NoError(t, err)
	assert.True(t, moderated.Published)
	assert.Len(t, s.Reviews(true), len(published)+1)

	require.NoError(t, s.ReviewDelete(created.ID))
	assert.ErrorIs(t, s.ReviewDelete(created.ID), ErrNotFound)
}

func TestClientCRUD(t *testing.T) {
	s := NewStore()

	created := s.ClientCreate(models.ClientCreate{FirstName: "Nadia", LastName: "Tazi", Email: "n.tazi@example.com"})
	assert.NotZero(t, created.ID)

	newPhone := "+212600000000"
	updated, err := s.ClientUpdate(created.ID, models.ClientUpdate{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, "Nadia", updated.FirstName)

	require.NoError(t, s.ClientDelete(created.ID))
	assert.ErrorIs(t, s.ClientDelete(created.ID), ErrNotFound)
}
