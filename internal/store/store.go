package store

import (
	"sync"
	"time"

	"carrental-backend/internal/models"
)

// Store хранит все данные приложения в памяти.
// Данные инициализируются при старте и не сохраняются между запусками.
// Запись всегда идет через методы Store (один писатель, много читателей).
type Store struct {
	mu sync.RWMutex

	vehicles  []models.Vehicle
	locations []models.PickupLocation
	offers    []models.Offer
	bookings  []models.Booking
	clients   []models.Client
	reviews   []models.Review

	nextVehicleID uint
	nextBookingID uint
	nextClientID  uint
	nextReviewID  uint
}

// NewStore создает хранилище с демонстрационными данными
func NewStore() *Store {
	s := &Store{}
	s.seed()
	return s
}

func (s *Store) seed() {
	now := time.Now()

	s.vehicles = []models.Vehicle{
		{ID: 1, Name: "Range Rover Sport", Category: models.VehicleCategorySUV, DailyRate: 1800, ImageURL: "/images/fleet/range-rover-sport.jpg", Seats: 5, Transmission: "automatic", Status: models.VehicleStatusAvailable, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Porsche 911 Carrera", Category: models.VehicleCategorySport, DailyRate: 2500, ImageURL: "/images/fleet/porsche-911.jpg", Seats: 2, Transmission: "automatic", Status: models.VehicleStatusAvailable, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Mercedes-Benz S580", Category: models.VehicleCategoryLuxury, DailyRate: 2200, ImageURL: "/images/fleet/mercedes-s580.jpg", Seats: 5, Transmission: "automatic", Status: models.VehicleStatusRented, CreatedAt: now, UpdatedAt: now},
		{ID: 4, Name: "Tesla Model S Plaid", Category: models.VehicleCategoryElectric, DailyRate: 2000, ImageURL: "/images/fleet/tesla-model-s.jpg", Seats: 5, Transmission: "automatic", Status: models.VehicleStatusAvailable, CreatedAt: now, UpdatedAt: now},
		{ID: 5, Name: "BMW M4 Competition", Category: models.VehicleCategorySport, DailyRate: 1900, ImageURL: "/images/fleet/bmw-m4.jpg", Seats: 4, Transmission: "automatic", Status: models.VehicleStatusRented, CreatedAt: now, UpdatedAt: now},
		{ID: 6, Name: "Audi Q8", Category: models.VehicleCategorySUV, DailyRate: 1200, ImageURL: "/images/fleet/audi-q8.jpg", Seats: 5, Transmission: "automatic", Status: models.VehicleStatusMaintenance, CreatedAt: now, UpdatedAt: now},
	}
	s.nextVehicleID = 7

	s.locations = []models.PickupLocation{
		{ID: "casablanca-airport", Name: "Аэропорт Мохаммед V", Address: "Aéroport Mohammed V, Nouaceur", Location: models.Location{Latitude: 33.3675, Longitude: -7.5898}},
		{ID: "casablanca-marina", Name: "Casablanca Marina", Address: "Boulevard des Almohades", Location: models.Location{Latitude: 33.6062, Longitude: -7.6261}},
		{ID: "ain-diab", Name: "Ain Diab Corniche", Address: "Boulevard de la Corniche", Location: models.Location{Latitude: 33.5936, Longitude: -7.6692}},
		{ID: "city-center", Name: "Центральный офис", Address: "Boulevard Zerktouni 212", Location: models.Location{Latitude: 33.5883, Longitude: -7.6114}},
	}

	s.offers = []models.Offer{
		{ID: 1, Title: "Неделя за цену пяти дней", Description: "При аренде от 7 дней два дня в подарок", DiscountPct: 28, ValidUntil: "2026-12-31"},
		{ID: 2, Title: "Выходные на спорткаре", Description: "Скидка на автомобили спортивной категории с пятницы по воскресенье", DiscountPct: 15, ValidUntil: "2026-10-01"},
	}

	s.clients = []models.Client{
		{ID: 1, FirstName: "Yassine", LastName: "Benali", Email: "y.benali@example.com", Phone: "+212612345678", BookingsCount: 3, CreatedAt: now, UpdatedAt: now},
		{ID: 2, FirstName: "Sofia", LastName: "Alaoui", Email: "sofia.alaoui@example.com", Phone: "+212698765432", BookingsCount: 1, CreatedAt: now, UpdatedAt: now},
	}
	s.nextClientID = 3

	s.reviews = []models.Review{
		{ID: 1, ClientName: "Yassine B.", Rating: 5, Comment: "Машину подали к трапу самолета, сервис на уровне.", Published: true, CreatedAt: now, UpdatedAt: now},
		{ID: 2, ClientName: "Karim E.", Rating: 4, Comment: "Отличный автопарк, хотелось бы больше электромобилей.", Published: true, CreatedAt: now, UpdatedAt: now},
		{ID: 3, ClientName: "Anonymous", Rating: 2, Comment: "Долго ждал подтверждения.", Published: false, CreatedAt: now, UpdatedAt: now},
	}
	s.nextReviewID = 4

	s.nextBookingID = 1
}

// DefaultLocationID возвращает идентификатор пункта выдачи по умолчанию
func (s *Store) DefaultLocationID() string {
	return "casablanca-airport"
}
