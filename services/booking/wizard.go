package booking

import (
	"context"
	"sync"
	"time"

	"bookflow/models"
	"bookflow/services/backend"
	"bookflow/services/payment"
	"bookflow/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage is one step of the strictly ordered wizard.
type Stage int

const (
	StageService Stage = iota + 1
	StageSlot
	StageContact
	StagePayment
	StageConfirm
)

// Timings carries the scripted demo durations.
type Timings struct {
	ProcessingSeconds     int
	TrackerWindowSeconds  int
	TrackerConfirmSeconds int
}

// Wizard accumulates one BookingData record across five stages. Each stage
// validates locally before Next advances and merges its fields without
// discarding earlier stages' fields; Back never rolls anything back.
type Wizard struct {
	mu      sync.Mutex
	store   *session.Store
	backend backend.Service
	payCfg  payment.Config
	timings Timings
	logger  *zap.Logger
	now     func() time.Time

	stage           Stage
	selectedService *models.Service
	selectedSlot    *models.Slot
	contactPhone    string
	contactAdresse  string
	contactVille    string
	contactNote     string

	paymentURL          string
	processingRemaining int
	tracker             *Tracker
}

// Snapshot is the wizard state a screen renders from.
type Snapshot struct {
	Stage               Stage              `json:"stage"`
	SelectedService     *models.Service    `json:"selectedService,omitempty"`
	SelectedSlot        *models.Slot       `json:"selectedSlot,omitempty"`
	PaymentURL          string             `json:"paymentUrl,omitempty"`
	ProcessingRemaining int                `json:"processingRemaining"`
	BookingData         models.BookingData `json:"bookingData"`
}

func NewWizard(store *session.Store, be backend.Service, payCfg payment.Config, timings Timings, logger *zap.Logger) *Wizard {
	if timings.ProcessingSeconds <= 0 {
		timings.ProcessingSeconds = 8
	}
	if timings.TrackerWindowSeconds <= 0 {
		timings.TrackerWindowSeconds = 30 * 60
	}
	if timings.TrackerConfirmSeconds <= 0 {
		timings.TrackerConfirmSeconds = 6
	}
	return &Wizard{
		store:   store,
		backend: be,
		payCfg:  payCfg,
		timings: timings,
		logger:  logger,
		now:     time.Now,
		stage:   StageService,
	}
}

// Start begins a fresh booking: the previous record is cleared and
// replaced, never merged into.
func (w *Wizard) Start(pro *models.Pro) {
	w.mu.Lock()
	w.stage = StageService
	w.selectedService = nil
	w.selectedSlot = nil
	w.contactPhone = ""
	w.contactAdresse = ""
	w.contactVille = ""
	w.contactNote = ""
	w.paymentURL = ""
	w.tracker = nil
	w.mu.Unlock()

	w.store.Dispatch(session.ResetBooking{})
	data := models.BookingData{BookingID: uuid.New().String()}
	if pro != nil {
		data.ProID = pro.ID
		w.store.Update(models.SessionPatch{SelectedPro: pro})
	}
	w.store.Dispatch(session.SetBookingData{Data: data})
	w.store.Go(models.ScreenBooking)
}

// Services returns the bookable catalog: the selected provider's own
// services when one is chosen (authoritative), the demo catalog otherwise.
func (w *Wizard) Services() []models.Service {
	if pro := w.store.Snapshot().SelectedPro; pro != nil {
		return pro.Services
	}
	return backend.DefaultCatalog()
}

// Slots returns the selectable slot set for the current time.
func (w *Wizard) Slots() []models.Slot {
	return BuildSlots(w.now())
}

// SelectService picks one active service on stage 1.
func (w *Wizard) SelectService(svc models.Service) error {
	if !svc.Actif {
		return ErrServiceInactive
	}
	w.mu.Lock()
	w.selectedService = &svc
	w.mu.Unlock()
	w.store.Update(models.SessionPatch{SelectedService: &svc})
	return nil
}

// SelectSlot picks one generated slot on stage 2.
func (w *Wizard) SelectSlot(slot models.Slot) {
	w.mu.Lock()
	w.selectedSlot = &slot
	w.mu.Unlock()
}

// SetContact stores the stage-3 inputs as typed; validation happens on Next.
func (w *Wizard) SetContact(phone, adresse, ville, note string) {
	w.mu.Lock()
	w.contactPhone = phone
	w.contactAdresse = adresse
	w.contactVille = ville
	w.contactNote = note
	w.mu.Unlock()
}

// ValidateContact applies the stage-3 minimum-length checks; each field
// gates independently.
func ValidateContact(phone, adresse, ville string) error {
	if len(phone) < 10 {
		return ErrPhoneTooShort
	}
	if len(adresse) < 5 {
		return ErrAdresseTooShort
	}
	if len(ville) < 2 {
		return ErrVilleTooShort
	}
	return nil
}

// Next validates the current stage and, if it passes, merges its fields
// into the booking record and advances. On rejection the stage and the
// record are unchanged and an error toast is shown.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	stage := w.stage
	w.mu.Unlock()

	switch stage {
	case StageService:
		return w.nextFromService()
	case StageSlot:
		return w.nextFromSlot()
	case StageContact:
		return w.nextFromContact()
	case StagePayment:
		return w.nextFromPayment(ctx)
	default:
		return ErrWizardDone
	}
}

func (w *Wizard) nextFromService() error {
	w.mu.Lock()
	svc := w.selectedService
	w.mu.Unlock()
	if svc == nil {
		w.store.ShowToast("Choisissez un service", models.ToastError)
		return ErrNoServiceSelected
	}

	data := w.store.Snapshot().BookingData
	data.ServiceID = svc.ID
	data.ServiceName = svc.Name
	data.Montant = svc.Prix
	w.store.Dispatch(session.SetBookingData{Data: data})

	w.mu.Lock()
	w.stage = StageSlot
	w.mu.Unlock()
	return nil
}

func (w *Wizard) nextFromSlot() error {
	w.mu.Lock()
	slot := w.selectedSlot
	w.mu.Unlock()
	if slot == nil {
		w.store.ShowToast("Choisissez un créneau", models.ToastError)
		return ErrNoSlotSelected
	}

	data := w.store.Snapshot().BookingData
	data.Date = slot.Date
	data.Heure = slot.Heure
	w.store.Dispatch(session.SetBookingData{Data: data})

	w.mu.Lock()
	w.stage = StageContact
	w.mu.Unlock()
	return nil
}

func (w *Wizard) nextFromContact() error {
	w.mu.Lock()
	phone, adresse, ville, note := w.contactPhone, w.contactAdresse, w.contactVille, w.contactNote
	w.mu.Unlock()

	if err := ValidateContact(phone, adresse, ville); err != nil {
		w.store.ShowToast("Complétez vos coordonnées", models.ToastError)
		return err
	}

	data := w.store.Snapshot().BookingData
	data.Phone = phone
	data.Adresse = adresse
	data.Ville = ville
	data.Note = note
	w.store.Dispatch(session.SetBookingData{Data: data})

	w.mu.Lock()
	w.stage = StagePayment
	w.mu.Unlock()
	return nil
}

// nextFromPayment builds the payment-provider URL, moves the UI onto the
// processing screen so the user is not left hanging while the browser
// navigates away, and records the pending booking with the backend as a
// best-effort background call.
func (w *Wizard) nextFromPayment(ctx context.Context) error {
	data := w.store.Snapshot().BookingData
	urlStr := w.payCfg.BookingURL(data)

	w.mu.Lock()
	w.paymentURL = urlStr
	w.stage = StageConfirm
	w.processingRemaining = w.timings.ProcessingSeconds
	w.mu.Unlock()

	// Optimistic local transition; the backend write reconciles in the
	// background and a failure only costs us the remote record.
	go func() {
		b := models.Booking{
			ID:          data.BookingID,
			ProID:       data.ProID,
			ServiceID:   data.ServiceID,
			ServiceName: data.ServiceName,
			Montant:     data.Montant,
			Date:        data.Date,
			Heure:       data.Heure,
			Adresse:     data.Adresse,
			Ville:       data.Ville,
			Note:        data.Note,
			Status:      models.BookingPending,
		}
		if _, err := w.backend.CreateBooking(context.Background(), b); err != nil {
			w.logger.Warn("background booking create failed", zap.Error(err))
		}
	}()

	w.store.Go(models.ScreenProcessing)
	task := w.store.Scheduler().Every(time.Second, w.tickProcessing)
	w.store.OwnScreenTask(task)
	return nil
}

// tickProcessing runs the fixed processing countdown; at zero the flow
// advances to live tracking on its own. This is a scripted transition, not
// a real confirmation signal.
func (w *Wizard) tickProcessing() {
	w.mu.Lock()
	if w.processingRemaining > 0 {
		w.processingRemaining--
	}
	done := w.processingRemaining <= 0
	w.mu.Unlock()
	if done {
		w.finishProcessing()
	}
}

func (w *Wizard) finishProcessing() {
	w.mu.Lock()
	if w.tracker != nil {
		w.mu.Unlock()
		return
	}
	data := w.store.Snapshot().BookingData
	tracker := NewTracker(w.store, w.backend, data.BookingID, w.timings, w.logger)
	w.tracker = tracker
	w.mu.Unlock()

	w.store.Go(models.ScreenTracking)
	w.store.ShowToast("Réservation envoyée", models.ToastSuccess)
	tracker.Start()
}

// Back returns to the previous stage. Previously entered fields stay put,
// so going back and forward again shows the earlier selections.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage > StageService {
		w.stage--
	}
}

// Stage reports the current wizard stage.
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// Tracker returns the live tracker once processing has handed over, nil
// before that.
func (w *Wizard) Tracker() *Tracker {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tracker
}

// Snapshot returns the wizard state for rendering.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Stage:               w.stage,
		SelectedService:     w.selectedService,
		SelectedSlot:        w.selectedSlot,
		PaymentURL:          w.paymentURL,
		ProcessingRemaining: w.processingRemaining,
		BookingData:         w.store.Snapshot().BookingData,
	}
}
