package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

var ErrInsertFailed = errors.New("db insert failed")

// InputError carries the client-facing reason of a rejected ledger record.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

type LedgerService struct {
	ledger *repository.LedgerRepository
	now    func() time.Time
}

func NewLedgerService(ledger *repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledger: ledger, now: time.Now}
}

func (s *LedgerService) ListFuelEntries(ctx context.Context) ([]model.FuelEntry, error) {
	rows, err := s.ledger.ListFuelEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fuel entries: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *LedgerService) CreateFuelEntry(ctx context.Context, in model.NewFuelEntry) (int64, error) {
	if in.TruckID <= 0 {
		return 0, &InputError{Reason: "truck_id_required"}
	}
	if in.Liters <= 0 {
		return 0, &InputError{Reason: "liters_must_be_positive"}
	}
	if in.TotalCost != nil && *in.TotalCost < 0 {
		return 0, &InputError{Reason: "total_cost_must_not_be_negative"}
	}
	fueledAt, err := s.timestamp(in.FueledAt, "fueled_at")
	if err != nil {
		return 0, err
	}

	currency := currencyOrDefault(in.Currency)
	id, err := s.ledger.InsertFuelEntry(ctx, model.FuelEntry{
		TruckID:    in.TruckID,
		LoadID:     in.LoadID,
		DriverID:   in.DriverID,
		Liters:     in.Liters,
		TotalCost:  in.TotalCost,
		Currency:   &currency,
		OdometerKm: in.OdometerKm,
		Location:   in.Location,
		FueledAt:   fueledAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: fuel entry: %w", ErrInsertFailed, err)
	}
	return id, nil
}

func (s *LedgerService) ListKmLogs(ctx context.Context) ([]model.KmLog, error) {
	rows, err := s.ledger.ListKmLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: km logs: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *LedgerService) CreateKmLog(ctx context.Context, in model.NewKmLog) (int64, error) {
	if in.TruckID <= 0 {
		return 0, &InputError{Reason: "truck_id_required"}
	}
	if in.Km <= 0 {
		return 0, &InputError{Reason: "km_must_be_positive"}
	}
	if in.OdometerStart != nil && in.OdometerEnd != nil && *in.OdometerEnd < *in.OdometerStart {
		return 0, &InputError{Reason: "odometer_end_before_start"}
	}
	loggedAt, err := s.timestamp(in.LoggedAt, "logged_at")
	if err != nil {
		return 0, err
	}

	id, err := s.ledger.InsertKmLog(ctx, model.KmLog{
		TruckID:       in.TruckID,
		LoadID:        in.LoadID,
		Km:            in.Km,
		OdometerStart: in.OdometerStart,
		OdometerEnd:   in.OdometerEnd,
		LoggedAt:      loggedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: km log: %w", ErrInsertFailed, err)
	}
	return id, nil
}

func (s *LedgerService) ListDriverPayments(ctx context.Context) ([]model.DriverPayment, error) {
	rows, err := s.ledger.ListDriverPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: driver payments: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *LedgerService) CreateDriverPayment(ctx context.Context, in model.NewDriverPayment) (int64, error) {
	if in.DriverID <= 0 {
		return 0, &InputError{Reason: "driver_id_required"}
	}
	if in.Amount <= 0 {
		return 0, &InputError{Reason: "amount_must_be_positive"}
	}
	paidAt, err := s.timestamp(in.PaidAt, "paid_at")
	if err != nil {
		return 0, err
	}

	currency := currencyOrDefault(in.Currency)
	id, err := s.ledger.InsertDriverPayment(ctx, model.DriverPayment{
		DriverID: in.DriverID,
		LoadID:   in.LoadID,
		Amount:   in.Amount,
		Currency: &currency,
		Method:   in.Method,
		Notes:    in.Notes,
		PaidAt:   paidAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: driver payment: %w", ErrInsertFailed, err)
	}
	return id, nil
}

// timestamp normalizes a client timestamp to the stored layout. Empty means
// now. Only a bare date or the full layout is accepted so that stored values
// keep comparing correctly as text.
func (s *LedgerService) timestamp(raw, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now().UTC().Format(model.TimestampLayout), nil
	}
	if t, err := time.Parse(model.DateLayout, raw); err == nil {
		return t.Format(model.TimestampLayout), nil
	}
	if t, err := time.Parse(model.TimestampLayout, raw); err == nil {
		return t.Format(model.TimestampLayout), nil
	}
	return "", &InputError{Reason: "invalid_" + field}
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return model.DefaultCurrency
	}
	return c
}
