// Package store is the persistence boundary for transactions: create,
// partial update, delete and date-range queries with cursor pagination.
// Storage faults are wrapped in WriteError and surfaced unchanged to the
// caller; there is no retry here.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// QueryOptions narrows a range query.
//
// BarberIDs nil means no barber filter; a non-nil empty slice means the
// caller resolved an empty identity set and the query must short-circuit to
// an empty page without touching the store.
type QueryOptions struct {
	BarberIDs []uuid.UUID
	Cursor    string
	PageSize  int // 0 = fetch everything (exports only)
}

type Page struct {
	Items      []models.Transaction
	NextCursor string
}

// TransactionUpdate lists the replaceable fields of an edit. Date and
// RegisteredBy are deliberately absent: they are write-once.
type TransactionUpdate struct {
	BarberID         *uuid.UUID
	ServiceIDs       *models.UUIDSlice
	Method           *string
	Total            *decimal.Decimal
	CommissionAmount *decimal.Decimal
	RevenueAmount    *decimal.Decimal
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, fields TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	QueryRange(ctx context.Context, start, end time.Time, opts QueryOptions) (Page, error)
}
