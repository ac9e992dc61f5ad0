package sale

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
)

// ErrUnverifiedNotification rejects a status pushed directly by a caller
// that did not present the webhook secret.
var ErrUnverifiedNotification = apperr.New(apperr.ErrUnauthenticated, "notificação de pagamento não autenticada")

// Notification is an inbound payment update. It carries either our external
// transaction id and status, or a gateway notification (Type "payment" and
// the gateway's payment id in DataID).
//
// A direct status is applied only when Verified is set. Gateway
// notifications never need it because the status is read back from the
// gateway itself.
type Notification struct {
	ExternalTransactionID string
	Status                string
	Type                  string
	DataID                string
	Verified              bool
}

// gatewayStatuses maps Mercado Pago payment statuses to ours.
var gatewayStatuses = map[string]PaymentStatus{
	"pending":      PaymentPending,
	"in_process":   PaymentProcessing,
	"authorized":   PaymentProcessing,
	"approved":     PaymentApproved,
	"rejected":     PaymentRejected,
	"cancelled":    PaymentCancelled,
	"refunded":     PaymentRefunded,
	"charged_back": PaymentRefunded,
}

func FromGatewayStatus(status string) (PaymentStatus, bool) {
	ps, ok := gatewayStatuses[status]
	return ps, ok
}

// HandleNotification applies an inbound payment update as a privileged
// caller. It returns a nil sale when the notification is not about a payment
// we track a status for. Transitions the state machine refuses are logged
// and ignored, so the sender does not keep retrying them.
func (s *Service) HandleNotification(ctx context.Context, n Notification) (*Sale, error) {
	externalID, next, params, ok, err := s.resolve(ctx, n)
	if err != nil || !ok {
		return nil, err
	}

	sale, err := s.Repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	updated, err := s.SetPaymentStatus(ctx, 0, sale.ID, next, params)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			slog.Warn("ignoring payment notification",
				"sale_id", sale.ID, "from", sale.PaymentStatus, "to", next, "error", err)

			return sale, nil
		}

		return nil, err
	}

	return updated, nil
}

func (s *Service) resolve(ctx context.Context, n Notification) (string, PaymentStatus, TransitionParams, bool, error) {
	if n.ExternalTransactionID != "" {
		if !n.Verified {
			return "", "", TransitionParams{}, false, ErrUnverifiedNotification
		}

		next := PaymentStatus(n.Status)
		if !next.Valid() {
			return "", "", TransitionParams{}, false, ErrInvalidStatus
		}

		return n.ExternalTransactionID, next, TransitionParams{}, true, nil
	}

	if n.Type != "payment" {
		return "", "", TransitionParams{}, false, nil
	}

	if n.DataID == "" {
		return "", "", TransitionParams{}, false, apperr.New(apperr.ErrInvalidInput, "notificação sem id de pagamento")
	}

	if s.Gateway == nil {
		return "", "", TransitionParams{}, false, apperr.New(apperr.ErrInvalidInput, "gateway de pagamento não configurado")
	}

	p, err := s.Gateway.GetPayment(ctx, n.DataID)
	if err != nil {
		return "", "", TransitionParams{}, false, err
	}

	next, ok := FromGatewayStatus(p.Status)
	if !ok {
		slog.Warn("ignoring unknown gateway status", "payment_id", p.ID, "status", p.Status)
		return "", "", TransitionParams{}, false, nil
	}

	if p.ExternalReference == "" {
		return "", "", TransitionParams{}, false, ErrNotFound
	}

	return p.ExternalReference, next, TransitionParams{GatewayPaymentID: &p.ID}, true, nil
}
