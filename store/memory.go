package store

import (
	"context"
	"sync"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory TransactionStore with the same paging
// semantics as GormStore. It backs service and handler tests so they run
// without a database.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]models.Transaction

	// QueryCalls counts QueryRange invocations that actually scanned data,
	// so tests can assert the empty-filter short-circuit.
	QueryCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{transactions: make(map[uuid.UUID]models.Transaction)}
}

func (s *MemoryStore) Create(_ context.Context, tx *models.Transaction) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	s.transactions[tx.ID] = *tx
	return tx.ID, nil
}

// Seed inserts a transaction as-is, keeping its Date. Test helper.
func (s *MemoryStore) Seed(tx models.Transaction) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	s.transactions[tx.ID] = tx
	return tx.ID
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fields TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return ErrNotFound
	}
	if fields.BarberID != nil {
		tx.BarberID = *fields.BarberID
	}
	if fields.ServiceIDs != nil {
		tx.ServiceIDs = *fields.ServiceIDs
	}
	if fields.Method != nil {
		tx.Method = *fields.Method
	}
	if fields.Total != nil {
		tx.Total = *fields.Total
	}
	if fields.CommissionAmount != nil {
		tx.CommissionAmount = *fields.CommissionAmount
	}
	if fields.RevenueAmount != nil {
		tx.RevenueAmount = *fields.RevenueAmount
	}
	s.transactions[id] = tx
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *MemoryStore) QueryRange(_ context.Context, start, end time.Time, opts QueryOptions) (Page, error) {
	if opts.BarberIDs != nil && len(opts.BarberIDs) == 0 {
		return Page{}, nil
	}

	var cursorDate time.Time
	var cursorID uuid.UUID
	hasCursor := false
	if opts.Cursor != "" {
		var err error
		cursorDate, cursorID, err = decodeCursor(opts.Cursor)
		if err != nil {
			return Page{}, err
		}
		hasCursor = true
	}

	s.mu.Lock()
	s.QueryCalls++
	s.mu.Unlock()

	// Same shape as the database path: one scan per id chunk with the
	// pageSize+1 ceiling applied per chunk, merged afterwards.
	chunks := chunkIDs(opts.BarberIDs, filterChunkSize)
	if chunks == nil {
		chunks = [][]uuid.UUID{nil}
	}

	var merged []models.Transaction
	for _, chunk := range chunks {
		items := s.scanRange(start, end, chunk, hasCursor, cursorDate, cursorID)
		sortTxDesc(items)
		if opts.PageSize > 0 && len(items) > opts.PageSize+1 {
			items = items[:opts.PageSize+1]
		}
		merged = append(merged, items...)
	}

	return paginateMerged(merged, opts.PageSize), nil
}

func (s *MemoryStore) scanRange(start, end time.Time, chunk []uuid.UUID, hasCursor bool, cursorDate time.Time, cursorID uuid.UUID) []models.Transaction {
	var filter map[uuid.UUID]struct{}
	if chunk != nil {
		filter = make(map[uuid.UUID]struct{}, len(chunk))
		for _, id := range chunk {
			filter[id] = struct{}{}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Transaction
	for _, tx := range s.transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		if filter != nil {
			if _, ok := filter[tx.BarberID]; !ok {
				continue
			}
		}
		if hasCursor {
			if tx.Date.After(cursorDate) {
				continue
			}
			if tx.Date.Equal(cursorDate) && tx.ID.String() >= cursorID.String() {
				continue
			}
		}
		matched = append(matched, tx)
	}
	return matched
}
