package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the production TransactionStore on top of gorm/Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, tx *models.Transaction) (uuid.UUID, error) {
	// Creation time is the server's, not the client's.
	tx.Date = time.Now()
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return uuid.Nil, &WriteError{Op: "create transaction", Err: err}
	}
	return tx.ID, nil
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, fields TransactionUpdate) error {
	var existing models.Transaction
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &WriteError{Op: "load transaction", Err: err}
	}

	updates := map[string]interface{}{}
	if fields.BarberID != nil {
		updates["barber_id"] = *fields.BarberID
	}
	if fields.ServiceIDs != nil {
		updates["service_ids"] = *fields.ServiceIDs
	}
	if fields.Method != nil {
		updates["method"] = *fields.Method
	}
	if fields.Total != nil {
		updates["total"] = *fields.Total
	}
	if fields.CommissionAmount != nil {
		updates["commission_amount"] = *fields.CommissionAmount
	}
	if fields.RevenueAmount != nil {
		updates["revenue_amount"] = *fields.RevenueAmount
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return &WriteError{Op: "update transaction", Err: err}
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return &WriteError{Op: "delete transaction", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) QueryRange(ctx context.Context, start, end time.Time, opts QueryOptions) (Page, error) {
	// An empty resolved identity set means "show nothing", not "show all".
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

	chunks := chunkIDs(opts.BarberIDs, filterChunkSize)
	if chunks == nil {
		chunks = [][]uuid.UUID{nil} // single unfiltered query
	}

	var merged []models.Transaction
	for _, chunk := range chunks {
		query := s.db.WithContext(ctx).
			Where("date BETWEEN ? AND ?", start, end).
			Order("date DESC, id DESC")
		if chunk != nil {
			query = query.Where("barber_id IN ?", chunk)
		}
		if hasCursor {
			query = query.Where("date < ? OR (date = ? AND id < ?)", cursorDate, cursorDate, cursorID)
		}
		if opts.PageSize > 0 {
			// One extra row per chunk to detect a next page after merging.
			query = query.Limit(opts.PageSize + 1)
		}

		var items []models.Transaction
		if err := query.Find(&items).Error; err != nil {
			return Page{}, &WriteError{Op: "query transactions", Err: err}
		}
		merged = append(merged, items...)
	}

	return paginateMerged(merged, opts.PageSize), nil
}

func sortTxDesc(items []models.Transaction) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID.String() > items[j].ID.String()
	})
}

// paginateMerged re-sorts the union of the per-chunk results and cuts the
// page. The cursor is re-applied to every chunk on the next call, so page
// boundaries stay exact for the merged (date desc, id desc) ordering.
func paginateMerged(items []models.Transaction, pageSize int) Page {
	sortTxDesc(items)

	page := Page{Items: items}
	if pageSize > 0 && len(items) > pageSize {
		page.Items = items[:pageSize]
		last := page.Items[pageSize-1]
		page.NextCursor = encodeCursor(last.Date, last.ID)
	}
	return page
}
