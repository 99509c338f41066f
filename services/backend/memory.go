package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookflow/models"

	"github.com/google/uuid"
)

// InMemoryService is the demo backend: every record lives in process
// memory, seeded with a small provider catalog. It stands in for the real
// remote contract during development and in tests.
type InMemoryService struct {
	mu            sync.Mutex
	pros          map[string]*models.Pro
	users         map[string]*models.User
	bookings      map[string]*models.Booking
	notifications map[string][]models.Notification // keyed by user id
	soldes        map[string]float64
	sequestres    map[string]float64
	transactions  []models.Transaction
}

// NewInMemoryService returns a demo backend seeded with the default
// provider catalog.
func NewInMemoryService() *InMemoryService {
	s := &InMemoryService{
		pros:          make(map[string]*models.Pro),
		users:         make(map[string]*models.User),
		bookings:      make(map[string]*models.Booking),
		notifications: make(map[string][]models.Notification),
		soldes:        make(map[string]float64),
		sequestres:    make(map[string]float64),
	}
	for _, p := range seedPros() {
		pro := p
		s.pros[pro.ID] = &pro
	}
	return s
}

func seedPros() []models.Pro {
	return []models.Pro{
		{
			ID:       "pro-1",
			Name:     "Salon Lumière",
			Category: "coiffure",
			Ville:    "Geneve",
			Phone:    "+41791112233",
			Rating:   4.8,
			Verified: true,
			Services: []models.Service{
				{ID: "svc-1", Name: "Coupe classique", Prix: 35, Duree: 30, Description: "Coupe et coiffage", Actif: true},
				{ID: "svc-2", Name: "Coupe + barbe", Prix: 55, Duree: 45, Description: "Coupe, barbe et finitions", Actif: true},
				{ID: "svc-3", Name: "Coloration", Prix: 90, Duree: 90, Description: "Coloration complète", Actif: false},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:       "pro-2",
			Name:     "Nettoyage Express",
			Category: "menage",
			Ville:    "Lausanne",
			Phone:    "+41794445566",
			Rating:   4.5,
			Verified: true,
			Services: []models.Service{
				{ID: "svc-4", Name: "Ménage standard", Prix: 65, Duree: 120, Description: "Appartement jusqu'à 3 pièces", Actif: true},
				{ID: "svc-5", Name: "Grand nettoyage", Prix: 120, Duree: 240, Description: "Nettoyage en profondeur", Actif: true},
			},
			CreatedAt: time.Now(),
		},
	}
}

// DefaultCatalog is the demo service list shown before a provider has been
// selected. Once a provider is chosen, its own services are authoritative.
func DefaultCatalog() []models.Service {
	return []models.Service{
		{ID: "svc-1", Name: "Coupe classique", Prix: 35, Duree: 30, Description: "Coupe et coiffage", Actif: true},
		{ID: "svc-2", Name: "Coupe + barbe", Prix: 55, Duree: 45, Description: "Coupe, barbe et finitions", Actif: true},
		{ID: "svc-4", Name: "Ménage standard", Prix: 65, Duree: 120, Description: "Appartement jusqu'à 3 pièces", Actif: true},
	}
}

func (s *InMemoryService) CreateBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	b.CreatedAt = time.Now()
	s.bookings[b.ID] = &b
	return b, nil
}

func (s *InMemoryService) setBookingStatus(bookingID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.Status = status
	return nil
}

func (s *InMemoryService) CancelBooking(_ context.Context, bookingID string) error {
	return s.setBookingStatus(bookingID, models.BookingCancelled)
}

func (s *InMemoryService) ConfirmBooking(_ context.Context, bookingID string) error {
	return s.setBookingStatus(bookingID, models.BookingConfirmed)
}

func (s *InMemoryService) DeclineBooking(_ context.Context, bookingID string) error {
	return s.setBookingStatus(bookingID, models.BookingDeclined)
}

// CompleteBooking marks the booking done and releases its escrowed amount
// to the provider's available balance.
func (s *InMemoryService) CompleteBooking(_ context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	b.Status = models.BookingCompleted
	if s.sequestres[b.ProID] >= b.Montant {
		s.sequestres[b.ProID] -= b.Montant
	} else {
		s.sequestres[b.ProID] = 0
	}
	s.soldes[b.ProID] += b.Montant
	s.transactions = append(s.transactions, models.Transaction{
		ID:        uuid.New().String(),
		ProID:     b.ProID,
		Montant:   b.Montant,
		Type:      "release",
		Note:      "Prestation terminée",
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *InMemoryService) ListPros(_ context.Context) ([]models.Pro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Pro, 0, len(s.pros))
	for _, p := range s.pros {
		out = append(out, *p)
	}
	return out, nil
}

func (s *InMemoryService) ListProsByCategory(_ context.Context, category string) ([]models.Pro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Pro
	for _, p := range s.pros {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *InMemoryService) GetPro(_ context.Context, proID string) (*models.Pro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pros[proID]
	if !ok {
		return nil, fmt.Errorf("pro %s not found", proID)
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryService) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryService) GetClientBookings(_ context.Context, clientID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *InMemoryService) GetProBookings(_ context.Context, proID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ProID == proID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *InMemoryService) GetNotifications(_ context.Context, userID string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications[userID]...), nil
}

func (s *InMemoryService) AddNotification(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	// Newest first; rendering keeps the given order.
	s.notifications[n.UserID] = append([]models.Notification{n}, s.notifications[n.UserID]...)
	return nil
}

func (s *InMemoryService) MarkNotificationRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, list := range s.notifications {
		for i := range list {
			if list[i].ID == notificationID {
				s.notifications[userID][i].Read = true
				return nil
			}
		}
	}
	return fmt.Errorf("notification %s not found", notificationID)
}

func (s *InMemoryService) GetProSolde(_ context.Context, proID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.soldes[proID], nil
}

func (s *InMemoryService) GetProSequestre(_ context.Context, proID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequestres[proID], nil
}

func (s *InMemoryService) AddTransaction(_ context.Context, t models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	switch t.Type {
	case "sequestre":
		s.sequestres[t.ProID] += t.Montant
	case "credit":
		s.soldes[t.ProID] += t.Montant
	}
	s.transactions = append(s.transactions, t)
	return nil
}

func (s *InMemoryService) RegisterUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	s.users[u.ID] = &u
	return u, nil
}

func (s *InMemoryService) RegisterPro(_ context.Context, p models.Pro) (models.Pro, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	s.pros[p.ID] = &p
	return p, nil
}

func (s *InMemoryService) UpdateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("user %s not found", u.ID)
	}
	s.users[u.ID] = &u
	return nil
}

func (s *InMemoryService) UpdatePro(_ context.Context, p models.Pro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pros[p.ID]; !ok {
		return fmt.Errorf("pro %s not found", p.ID)
	}
	s.pros[p.ID] = &p
	return nil
}
