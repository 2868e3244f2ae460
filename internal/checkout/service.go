package checkout

import (
	"context"
	"fmt"

	"github.com/alunakitchen/pickup-backend/internal/cart"
	"github.com/alunakitchen/pickup-backend/internal/orders"
	"github.com/alunakitchen/pickup-backend/pkg/db"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileEnsurer interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, fullName string) (*models.Profile, error)
}

type changePublisher interface {
	OrdersChanged(ctx context.Context)
}

// Service merges the cart, profile, and checkout overrides into order
// submissions.
type Service interface {
	Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*ResolutionDTO, error)
	Submit(ctx context.Context, userID uuid.UUID, sessionID string) (*orders.OrderDTO, error)
}

type service struct {
	carts         cart.Store
	profiles      profileEnsurer
	orderRepo     *orders.Repository
	dbClient      *db.Client
	publisher     changePublisher
	pickupAddress string
	logg          *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(
	carts cart.Store,
	profiles profileEnsurer,
	orderRepo *orders.Repository,
	dbClient *db.Client,
	publisher changePublisher,
	pickupAddress string,
	logg *logger.Logger,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile service required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("change publisher required")
	}
	if pickupAddress == "" {
		return nil, fmt.Errorf("pickup address required")
	}
	return &service{
		carts:         carts,
		profiles:      profiles,
		orderRepo:     orderRepo,
		dbClient:      dbClient,
		publisher:     publisher,
		pickupAddress: pickupAddress,
		logg:          logg,
	}, nil
}

// Resolve previews the effective submission fields without writing
// anything.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID, sessionID string) (*ResolutionDTO, error) {
	session, profile, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	resolution := resolve(session, profile, s.pickupAddress)
	dto := toResolutionDTO(resolution)
	return &dto, nil
}

// Submit validates the resolved fields, inserts the order as a single
// atomic write, and only then clears the cart and re-seeds the
// overrides from the profile. A failed insert leaves the session
// untouched.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, sessionID string) (*orders.OrderDTO, error) {
	session, profile, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	resolution := resolve(session, profile, s.pickupAddress)
	if err := resolution.validate(); err != nil {
		return nil, err
	}

	order := resolution.submission(userID)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.orderRepo.WithTx(tx).Insert(ctx, &order)
		return err
	}); err != nil {
		return nil, err
	}

	s.resetSession(ctx, sessionID, session, profile)
	s.publisher.OrdersChanged(ctx)

	dto := orders.ToOrderDTO(order)
	return &dto, nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID, sessionID string) (*cart.Session, *models.Profile, error) {
	session, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.EnsureProfile(ctx, userID, "")
	if err != nil {
		return nil, nil, err
	}
	return session, profile, nil
}

// resetSession clears the cart and seeds the overrides from the
// profile so the next checkout starts fresh. The order is already
// committed, so a failure here only warrants a log line.
func (s *service) resetSession(ctx context.Context, sessionID string, session *cart.Session, profile *models.Profile) {
	session.Cart.Clear()
	session.Overrides = cart.Overrides{Phone: profile.Phone}
	if profile.Notes != nil {
		session.Overrides.Notes = *profile.Notes
	}
	if err := s.carts.Save(ctx, sessionID, session); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to reset cart session after checkout", err)
	}
}
