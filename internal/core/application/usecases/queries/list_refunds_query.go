// Package queries contains read-only operations against the database.
// Query handlers bypass the domain model and read with raw SQL, returning
// display-shaped response structs (CQRS read side).
package queries

import (
	"errors"
	"math"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrListRefundsQueryIsNotConstructed = errors.New(
		"ListRefundsQuery must be created via NewListRefundsQuery constructor",
	)
)

// StatusFilterEscalated is a virtual status filter: it selects refunds with
// the escalation flag set regardless of their workflow status.
const StatusFilterEscalated = "escalated"

// StatusFilterAll selects refunds in any status.
const StatusFilterAll = "all"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListRefundsQuery retrieves the admin refund review list: refunds joined
// with order, customer and provider display fields, narrowed to the acting
// admin's governorate scope.
type ListRefundsQuery struct { //nolint:recvcheck //using for validation
	adminID       kernel.UUID
	statusFilter  string
	search        string
	governorateID string
	page          int
	pageSize      int

	guard guard.ConstructorGuard
}

// NewListRefundsQuery creates a refund list query for the given admin.
// statusFilter accepts any workflow status, "escalated" or "all"; search is
// free text matched against order number, customer name, provider name and
// refund reason; governorateID optionally narrows the scope further.
func NewListRefundsQuery(
	adminID kernel.UUID,
	statusFilter string,
	search string,
	governorateID string,
	page int,
	pageSize int,
) (ListRefundsQuery, error) {
	q := ListRefundsQuery{
		search:        strings.TrimSpace(search),
		governorateID: strings.TrimSpace(governorateID),
		guard:         guard.NewConstructorGuard(),
	}

	if err := q.setAdminID(adminID); err != nil {
		return ListRefundsQuery{}, err
	}

	if err := q.setStatusFilter(statusFilter); err != nil {
		return ListRefundsQuery{}, err
	}

	if err := q.setPaging(page, pageSize); err != nil {
		return ListRefundsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRefundsQuery) Validate() error {
	return q.guard.Validate(ErrListRefundsQueryIsNotConstructed)
}

// AdminID returns the acting admin's id.
func (q ListRefundsQuery) AdminID() kernel.UUID { return q.adminID }

// StatusFilter returns the requested status filter.
func (q ListRefundsQuery) StatusFilter() string { return q.statusFilter }

// Search returns the trimmed free-text search term, empty when absent.
func (q ListRefundsQuery) Search() string { return q.search }

// GovernorateID returns the optional governorate narrowing, empty when absent.
func (q ListRefundsQuery) GovernorateID() string { return q.governorateID }

// Page returns the 1-based page number.
func (q ListRefundsQuery) Page() int { return q.page }

// PageSize returns the page size.
func (q ListRefundsQuery) PageSize() int { return q.pageSize }

func (q *ListRefundsQuery) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	q.adminID = adminID
	return nil
}

func (q *ListRefundsQuery) setStatusFilter(statusFilter string) error {
	statusFilter = strings.TrimSpace(statusFilter)
	if statusFilter == "" {
		q.statusFilter = StatusFilterAll
		return nil
	}

	if statusFilter == StatusFilterAll || statusFilter == StatusFilterEscalated {
		q.statusFilter = statusFilter
		return nil
	}

	if _, err := refund.StatusFromString(statusFilter); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("statusFilter", err)
	}
	q.statusFilter = statusFilter
	return nil
}

func (q *ListRefundsQuery) setPaging(page, pageSize int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, math.MaxInt)
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}

	q.page = page
	q.pageSize = pageSize
	return nil
}

// ListRefundsQueryResponse is one page of the refund review list plus the
// scope-wide stats the admin dashboard renders above it.
type ListRefundsQueryResponse struct {
	Refunds []RefundListItem
	Stats   RefundStats
	Total   int64
}

// RefundListItem is one row of the refund review list.
type RefundListItem struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	OrderNumber      string
	CustomerName     string
	ProviderName     string
	GovernorateName  string
	Amount           float64
	ProcessedAmount  *float64
	Reason           string
	Status           refund.Status
	EscalatedToAdmin bool
	ProviderAction   *string
	ReviewNotes      *string
	ProcessingNotes  *string
	CreatedAt        time.Time
}

// RefundStats aggregates the admin's visible refund set, ignoring the page's
// status and search filters.
type RefundStats struct {
	PendingCount         int64
	ApprovedCount        int64
	ProcessedCount       int64
	EscalatedCount       int64
	TotalProcessedAmount float64
}
