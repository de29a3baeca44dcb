package services

import (
	"compras-app/models"
	"compras-app/repositories"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// BatchService applies one set of field changes to a multi-row selection and
// generates shared order numbers for a selection.
type BatchService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
}

func NewBatchService(db *gorm.DB) *BatchService {
	return &BatchService{db: db, orders: repositories.NewOrderRepository(db)}
}

// SelectedOrder is the row snapshot captured at selection time. The note is
// carried along because the append is computed against the note each row had
// when it was selected, not a re-fetched one.
type SelectedOrder struct {
	ID      int64  `json:"id"`
	OrderNo string `json:"order_no"`
	Note    string `json:"note"`
}

// BatchChanges is the sparse patch. String fields are applied when non-empty.
// The tax percentages are pointers because zero is a legitimate rate: only a
// nil pointer means "leave unchanged".
type BatchChanges struct {
	Status       string   `json:"status"`
	OrderNo      string   `json:"order_no"`
	DeliveryDate string   `json:"delivery_date"`
	NoteAppend   string   `json:"note_append"`
	CategoryId   *int64   `json:"category_id"`
	SupplierId   *int64   `json:"supplier_id"`
	IpiPct       *float64 `json:"ipi_pct"`
	IcmsPct      *float64 `json:"icms_pct"`
}

type RowFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

type BatchResult struct {
	Updated  int          `json:"updated"`
	Failures []RowFailure `json:"failures"`
	Message  string       `json:"message"`
}

var ErrEmptySelection = errors.New("no orders selected")

// AlreadyNumberedError rejects an order-number generation when part of the
// selection already carries a number. No row is modified in that case.
type AlreadyNumberedError struct {
	IDs []int64
}

func (e *AlreadyNumberedError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "orders already numbered: " + strings.Join(parts, ", ")
}

// ApplyChanges patches every selected row with the provided fields. Rows fail
// independently: one bad row does not abort its siblings, and the result
// summarizes both counts in a single message.
func (s *BatchService) ApplyChanges(selection []SelectedOrder, changes BatchChanges, userID int) (BatchResult, error) {
	if len(selection) == 0 {
		return BatchResult{}, ErrEmptySelection
	}

	result := BatchResult{}
	for _, row := range selection {
		updates := map[string]interface{}{}

		if changes.Status != "" {
			updates["status"] = changes.Status
		}
		if changes.OrderNo != "" {
			updates["order_no"] = changes.OrderNo
		}
		if changes.DeliveryDate != "" {
			updates["delivery_date"] = changes.DeliveryDate
		}
		if changes.NoteAppend != "" {
			// Rows may already carry different notes, so the append is
			// computed per row from its own snapshot.
			if row.Note != "" {
				updates["note"] = row.Note + "\n" + changes.NoteAppend
			} else {
				updates["note"] = changes.NoteAppend
			}
		}
		if changes.CategoryId != nil {
			updates["category_id"] = *changes.CategoryId
		}
		if changes.SupplierId != nil {
			updates["supplier_id"] = *changes.SupplierId
		}
		if changes.IpiPct != nil {
			updates["ipi_pct"] = *changes.IpiPct
		}
		if changes.IcmsPct != nil {
			updates["icms_pct"] = *changes.IcmsPct
		}

		if len(updates) == 0 {
			continue
		}
		updates["updated_by"] = userID

		err := s.db.Model(&models.PurchaseOrder{}).Where("id = ?", row.ID).Updates(updates).Error
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{ID: row.ID, Error: err.Error()})
			continue
		}
		result.Updated++
	}

	if len(result.Failures) == 0 {
		result.Message = fmt.Sprintf("%d ordem(ns) atualizada(s)", result.Updated)
	} else {
		result.Message = fmt.Sprintf("%d ordem(ns) atualizada(s), %d falha(s)", result.Updated, len(result.Failures))
	}
	return result, nil
}

// AssignOrderNumber generates the next number for today and stamps it on every
// selected row. The precondition is strict: if any selected row already has a
// number the whole operation is rejected and nothing is written.
//
// The sequence is derived by scanning existing numbers at call time. Two
// batches racing on the same date can draw the same sequence; there is no
// lock here on purpose, matching current product behavior.
func (s *BatchService) AssignOrderNumber(selection []SelectedOrder, now time.Time, userID int) (string, BatchResult, error) {
	if len(selection) == 0 {
		return "", BatchResult{}, ErrEmptySelection
	}

	var numbered []int64
	for _, row := range selection {
		if row.OrderNo != "" {
			numbered = append(numbered, row.ID)
		}
	}
	if len(numbered) > 0 {
		return "", BatchResult{}, &AlreadyNumberedError{IDs: numbered}
	}

	orderNo, err := s.NextOrderNumber(now)
	if err != nil {
		return "", BatchResult{}, err
	}

	result, err := s.ApplyChanges(selection, BatchChanges{OrderNo: orderNo}, userID)
	if err != nil {
		return "", BatchResult{}, err
	}
	return orderNo, result, nil
}

// NextOrderNumber builds "<ddmmyy><2-digit seq>" where the sequence is one
// above the highest existing suffix sharing today's date prefix, starting at
// 01 when the day has no numbers yet.
func (s *BatchService) NextOrderNumber(now time.Time) (string, error) {
	prefix := now.Format("020106")

	numbers, err := s.orders.NumbersWithPrefix(prefix)
	if err != nil {
		return "", err
	}

	maxSeq := 0
	for _, number := range numbers {
		if len(number) != len(prefix)+2 {
			continue
		}
		seq, convErr := strconv.Atoi(number[len(prefix):])
		if convErr != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s%02d", prefix, maxSeq+1), nil
}

// ClearOrderNumbers is the administrative action that releases the numbers of
// a selection so they can be regenerated.
func (s *BatchService) ClearOrderNumbers(selection []SelectedOrder, userID int) (BatchResult, error) {
	if len(selection) == 0 {
		return BatchResult{}, ErrEmptySelection
	}

	result := BatchResult{}
	for _, row := range selection {
		err := s.db.Model(&models.PurchaseOrder{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"order_no": "", "updated_by": userID}).Error
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{ID: row.ID, Error: err.Error()})
			continue
		}
		result.Updated++
	}
	result.Message = fmt.Sprintf("%d numero(s) de ordem liberado(s)", result.Updated)
	return result, nil
}
