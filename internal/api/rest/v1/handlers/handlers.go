// Package handlers provides API endpoint handling functionality.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	handlersErrors "github.com/dkovalev/go-skinstore/internal/api/rest/v1/errors"
	"github.com/dkovalev/go-skinstore/internal/models/modeldto"
	"github.com/dkovalev/go-skinstore/internal/service/processor/v1"
	serviceErrors "github.com/dkovalev/go-skinstore/internal/service/processor/v1/errors"
	storageErrors "github.com/dkovalev/go-skinstore/internal/storage/v1/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	purchaseTimeout = 5 * time.Second
	itemsTimeout    = 60 * time.Second
)

// Handler defines attributes of a struct available to its methods.
type Handler struct {
	service processor.Processor
	log     *zerolog.Logger
}

// InitHandlers initializes a handler object.
func InitHandlers(mainService processor.Processor, log *zerolog.Logger) (*Handler, error) {
	if mainService == nil {
		return nil, &handlersErrors.HandlersFoundNilArgument{Msg: "nil processor was passed to handlers initializer"}
	}
	return &Handler{service: mainService, log: log}, nil
}

// HandlePurchase processes purchase requests.
func (h *Handler) HandlePurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), purchaseTimeout)
		defer cancel()
		if r.Header.Get("Content-Type") != "application/json" {
			h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid Content-Type", nil)
			return
		}
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			h.log.Error().Err(err).Msg("HandlePurchase failed")
			h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		var newPurchase modeldto.NewPurchase
		err = json.Unmarshal(b, &newPurchase)
		if err != nil {
			h.log.Error().Err(err).Msg("HandlePurchase failed")
			h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request body is not valid JSON", nil)
			return
		}
		details := validateNewPurchase(newPurchase)
		if len(details) != 0 {
			h.log.Error().Msg(fmt.Sprintf("purchase request validation failed for %v", newPurchase))
			h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", details)
			return
		}
		h.log.Info().Msg(fmt.Sprintf("new purchase request detected for user %s, product %s", newPurchase.UserID, newPurchase.ProductID))
		receipt, err := h.service.Purchase(ctx, newPurchase.UserID, newPurchase.ProductID)
		if err != nil {
			var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
			var notFoundError *storageErrors.NotFoundError
			var insufficientFundsError *serviceErrors.InsufficientFundsError
			var concurrentModificationError *serviceErrors.ConcurrentModificationError
			if errors.As(err, &contextTimeoutExceededError) {
				h.log.Error().Err(err).Msg("HandlePurchase failed")
				h.writeError(w, http.StatusGatewayTimeout, "INTERNAL_ERROR", "Request timed out", nil)
			} else if errors.As(err, &notFoundError) {
				h.writeError(w, http.StatusNotFound, "NOT_FOUND", "User or product not found", nil)
			} else if errors.As(err, &insufficientFundsError) {
				h.writeError(w, http.StatusBadRequest, "INSUFFICIENT_FUNDS", "Insufficient funds for this operation", nil)
			} else if errors.As(err, &concurrentModificationError) {
				h.writeError(w, http.StatusConflict, "CONFLICT", "Concurrent modification detected, please retry", nil)
			} else {
				h.log.Error().Err(err).Msg("HandlePurchase failed")
				h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			}
			return
		}
		h.writeData(w, http.StatusOK, receipt)
	}
}

// HandleGetItems processes catalog listing requests.
func (h *Handler) HandleGetItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), itemsTimeout)
		defer cancel()
		items, err := h.service.ListItems(ctx)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleGetItems failed")
			var upstreamUnavailableError *serviceErrors.UpstreamUnavailableError
			if errors.As(err, &upstreamUnavailableError) {
				h.writeError(w, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "Failed to fetch data from Skinport", nil)
			} else {
				h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			}
			return
		}
		h.writeData(w, http.StatusOK, items)
	}
}

// HandleHealth processes liveness probes.
func (h *Handler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"ok"}`))
		if err != nil {
			h.log.Error().Err(err).Msg("HandleHealth failed")
		}
	}
}

// validateNewPurchase checks that both identifiers are well-formed UUIDs.
func validateNewPurchase(newPurchase modeldto.NewPurchase) []modeldto.FieldError {
	var details []modeldto.FieldError
	if _, err := uuid.Parse(newPurchase.UserID); err != nil {
		details = append(details, modeldto.FieldError{Field: "userId", Message: "userId must be a valid UUID"})
	}
	if _, err := uuid.Parse(newPurchase.ProductID); err != nil {
		details = append(details, modeldto.FieldError{Field: "productId", Message: "productId must be a valid UUID"})
	}
	return details
}

func (h *Handler) writeData(w http.ResponseWriter, statusCode int, data interface{}) {
	resBody, err := json.Marshal(modeldto.Response{Success: true, Data: data})
	if err != nil {
		h.log.Error().Err(err).Msg("response marshalling failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(resBody)
	if err != nil {
		h.log.Error().Err(err).Msg("response writing failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, code, message string, details []modeldto.FieldError) {
	resBody, err := json.Marshal(modeldto.Response{Success: false, Error: &modeldto.ResponseError{Code: code, Message: message, Details: details}})
	if err != nil {
		h.log.Error().Err(err).Msg("response marshalling failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(resBody)
	if err != nil {
		h.log.Error().Err(err).Msg("response writing failed")
	}
}
