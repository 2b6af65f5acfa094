package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// PriceCache abstracts the short-lived pricing response cache (Redis).
// Get returns (nil, nil) on a miss.
type PriceCache interface {
	Get(ctx context.Context, submissionID int64, directFactor, indirectFactor float64) (*ports.PricingResult, error)
	Set(ctx context.Context, submissionID int64, directFactor, indirectFactor float64, res *ports.PricingResult) error
}

// CartService implements the cart submission and quote pipeline.
type CartService struct {
	users   ports.UserRepository
	carts   ports.CartRepository
	pricing ports.PricingClient
	mail    ports.MailDispatcher
	cache   PriceCache
	log     zerolog.Logger
}

func NewCartService(
	users ports.UserRepository,
	carts ports.CartRepository,
	pricing ports.PricingClient,
	mail ports.MailDispatcher,
	cache PriceCache,
	log zerolog.Logger,
) *CartService {
	return &CartService{users: users, carts: carts, pricing: pricing, mail: mail, cache: cache, log: log}
}

// Submit persists a pending submission and queues a confirmation email.
// The email is fire-and-forget: a delivery failure is logged by the
// dispatcher and never rolls the submission back.
func (s *CartService) Submit(ctx context.Context, username string, items []domain.CartItem) (*ports.SubmitResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	sub, err := s.carts.Create(ctx, &domain.CartSubmission{
		UserID: user.ID,
		Status: domain.SubmissionPending,
		Items:  items,
	})
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.mail.Enqueue(ports.EmailMessage{
		To:      user.Email,
		Subject: "Cart Submission Confirmation - Jigyasu",
		Body: fmt.Sprintf("Hello %s,\n\nYour cart has been successfully submitted. "+
			"We are processing it now.\n\nThank you!", user.Name),
	})

	s.log.Info().
		Int64("submission_id", sub.ID).
		Str("username", username).
		Int("items", len(items)).
		Msg("cart submitted")

	return &ports.SubmitResult{
		SubmissionID:  sub.ID,
		ItemsReceived: len(items),
		Status:        string(sub.Status),
	}, nil
}

func (s *CartService) ListSubmissions(ctx context.Context, callerRole, status string) ([]ports.SubmissionView, error) {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return nil, err
	}
	return s.carts.List(ctx, domain.SubmissionStatus(status))
}

// Price forwards the submission's items to the pricing collaborator with the
// two factors. Responses are cached briefly so repeated what-if calls with
// identical factors skip the upstream round trip.
func (s *CartService) Price(ctx context.Context, callerRole string, submissionID int64, directFactor, indirectFactor float64) (*ports.PriceQuote, error) {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return nil, err
	}

	sub, err := s.carts.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if cached, cacheErr := s.cache.Get(ctx, submissionID, directFactor, indirectFactor); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("submission_id", submissionID).Msg("price cache lookup failed")
	} else if cached != nil {
		return s.toQuote(submissionID, cached), nil
	}

	res, err := s.pricing.Price(ctx, sub.Items, directFactor, indirectFactor)
	if err != nil {
		return nil, fmt.Errorf("price submission %d: %w", submissionID, err)
	}

	if cacheErr := s.cache.Set(ctx, submissionID, directFactor, indirectFactor, res); cacheErr != nil {
		s.log.Warn().Err(cacheErr).Int64("submission_id", submissionID).Msg("price cache store failed")
	}

	return s.toQuote(submissionID, res), nil
}

// Quote emails the quoted price to the submission's owner and marks the
// submission replied.
func (s *CartService) Quote(ctx context.Context, callerRole string, submissionID int64, quotedPrice float64) error {
	if err := domain.RequireRole(callerRole, domain.RoleSuperuser); err != nil {
		return err
	}

	sub, err := s.carts.FindByID(ctx, submissionID)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, sub.UserID)
	if err != nil {
		return err
	}

	s.mail.Enqueue(ports.EmailMessage{
		To:      user.Email,
		Subject: "Your Cart Quote",
		Body: fmt.Sprintf("Hello %s,\n\nYour cart has been reviewed. The quoted price "+
			"for your cart is $%.2f.\n\nThank you for your patience!", user.Name, quotedPrice),
	})

	if sub.Status.CanTransitionTo(domain.SubmissionReplied) {
		if err := s.carts.SetStatus(ctx, submissionID, domain.SubmissionReplied); err != nil {
			return fmt.Errorf("mark submission replied: %w", err)
		}
	}

	s.log.Info().
		Int64("submission_id", submissionID).
		Float64("quoted_price", quotedPrice).
		Msg("quote sent")

	return nil
}

func (s *CartService) toQuote(submissionID int64, res *ports.PricingResult) *ports.PriceQuote {
	return &ports.PriceQuote{
		SubmissionID: submissionID,
		TotalPrice:   res.Final,
		Components:   res.Components,
	}
}
