package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/config"
	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/payment"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, userID string) (*payment.Order, error)
}

// OrderCreator is the gateway call the service depends on.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error)
}

type paymentService struct {
	gateway OrderCreator
	cfg     *config.Config
}

func NewPaymentService(gateway OrderCreator, cfg *config.Config) PaymentService {
	return &paymentService{gateway: gateway, cfg: cfg}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string) (*payment.Order, error) {
	// Receipt stays under the gateway's 40-char cap: 8 chars of the user
	// id plus the last 6 digits of the timestamp.
	shortUserID := userID
	if len(shortUserID) > 8 {
		shortUserID = shortUserID[:8]
	}
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	receipt := fmt.Sprintf("rcpt_%s_%s", shortUserID, ts[len(ts)-6:])

	amountInPaise := int64(math.Round(s.cfg.Razorpay.AmountInRupees * 100))

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   amountInPaise,
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}
