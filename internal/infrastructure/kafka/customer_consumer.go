package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bancacore/cuenta-ledger/internal/application/usecase"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/pkg/kafka"
)

// customerEvent is the payload published by the identity service on its
// customer topic.
type customerEvent struct {
	CustomerID     string `json:"clienteId"`
	Name           string `json:"nombre"`
	Identification string `json:"identificacion"`
	Active         bool   `json:"estado"`
}

// CustomerEventHandler reacts to customer lifecycle events: when a customer
// is deactivated upstream, all of their active accounts are deactivated
// here so no further movements can post.
type CustomerEventHandler struct {
	listAccounts *usecase.ListAccounts
	deactivate   *usecase.DeactivateAccount
	logger       *slog.Logger
}

// NewCustomerEventHandler creates the handler.
func NewCustomerEventHandler(
	listAccounts *usecase.ListAccounts,
	deactivate *usecase.DeactivateAccount,
	logger *slog.Logger,
) *CustomerEventHandler {
	return &CustomerEventHandler{
		listAccounts: listAccounts,
		deactivate:   deactivate,
		logger:       logger,
	}
}

// Handle is the kafka.Handler for the customer topic. A malformed payload
// is logged and dropped; a downstream failure is returned so the message is
// redelivered.
func (h *CustomerEventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var evt customerEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		h.logger.Error("malformed customer event, dropping", "error", err)
		return nil
	}
	if evt.CustomerID == "" {
		h.logger.Error("customer event without customer id, dropping")
		return nil
	}
	if evt.Active {
		return nil
	}

	h.logger.Info("customer deactivated upstream", "customer_id", evt.CustomerID)

	for {
		page, err := h.listAccounts.Execute(ctx, evt.CustomerID, true, 0, 0)
		if err != nil {
			return fmt.Errorf("list accounts for %s: %w", evt.CustomerID, err)
		}
		if len(page.Accounts) == 0 {
			return nil
		}

		for _, account := range page.Accounts {
			if _, err := h.deactivate.Execute(ctx, account.AccountNumber); err != nil {
				// A concurrent deactivation of the same account is fine.
				if errors.Is(err, model.ErrInactiveAccount) {
					continue
				}
				return fmt.Errorf("deactivate account %s: %w", account.AccountNumber, err)
			}
		}
	}
}
