package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRefundsQueryHandler reads the admin refund review queue. It joins
// refunds with the order, customer and provider display fields, scopes the
// set to the acting admin's governorates and computes the dashboard stats
// over the same scope, ignoring the page's status and search filters.
type ListRefundsQueryHandler struct {
	db           *gorm.DB
	accessPolicy ports.AccessPolicy
	geo          ports.GeoDirectory
}

// NewListRefundsQueryHandler creates a handler for refund list queries.
func NewListRefundsQueryHandler(
	db *gorm.DB,
	accessPolicy ports.AccessPolicy,
	geo ports.GeoDirectory,
) ListRefundsQueryHandler {
	return ListRefundsQueryHandler{db: db, accessPolicy: accessPolicy, geo: geo}
}

// Handle executes the refund list query.
func (h ListRefundsQueryHandler) Handle(
	ctx context.Context,
	query ListRefundsQuery,
) (ListRefundsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListRefundsQueryResponse{}, err
	}

	scope, err := h.accessPolicy.RefundScopeFor(ctx, query.AdminID())
	if err != nil {
		return ListRefundsQueryResponse{}, err
	}
	scope = scope.Narrow(query.GovernorateID())

	// A regional admin with no assigned governorates sees nothing, not
	// everything.
	if !scope.AllGovernorates && len(scope.GovernorateIDs) == 0 {
		return ListRefundsQueryResponse{Refunds: []RefundListItem{}}, nil
	}

	scopeCond, scopeArgs := scopeCondition(scope)

	stats, err := h.loadStats(ctx, scopeCond, scopeArgs)
	if err != nil {
		return ListRefundsQueryResponse{}, err
	}

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 6)
	if scopeCond != "" {
		conditions = append(conditions, scopeCond)
		args = append(args, scopeArgs...)
	}

	switch query.StatusFilter() {
	case StatusFilterAll:
	case StatusFilterEscalated:
		conditions = append(conditions, "r.escalated_to_admin = TRUE")
	default:
		conditions = append(conditions, "r.status = ?")
		args = append(args, query.StatusFilter())
	}

	if query.Search() != "" {
		conditions = append(conditions,
			"(o.order_number ILIKE ? OR c.name ILIKE ? OR p.name ILIKE ? OR r.reason ILIKE ?)")
		term := "%" + query.Search() + "%"
		args = append(args, term, term, term, term)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err = h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM refunds r
		JOIN orders o ON o.id = r.order_id
		JOIN customers c ON c.id = r.customer_id
		JOIN providers p ON p.id = r.provider_id
		%s
	`, where), args...).Scan(&total).Error
	if err != nil {
		return ListRefundsQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			r.id,
			r.order_id,
			o.order_number,
			c.name,
			p.name,
			p.governorate_id,
			r.amount,
			r.processed_amount,
			r.reason,
			r.status,
			r.escalated_to_admin,
			r.provider_action,
			r.review_notes,
			r.processing_notes,
			r.created_at
		FROM refunds r
		JOIN orders o ON o.id = r.order_id
		JOIN customers c ON c.id = r.customer_id
		JOIN providers p ON p.id = r.provider_id
		%s
		ORDER BY r.created_at DESC, r.id
		LIMIT ? OFFSET ?
	`, where), append(args, query.PageSize(), offset)...).Rows()
	if err != nil {
		return ListRefundsQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]RefundListItem, 0, query.PageSize())
	governorateNames := make(map[string]string)

	for rows.Next() {
		var (
			id, orderID                               uuid.UUID
			orderNumber, customerName, providerName   string
			governorateID, reason, status             string
			amount                                    float64
			processedAmount                           *float64
			escalated                                 bool
			providerAction, reviewNotes, processNotes *string
			createdAt                                 time.Time
		)

		err = rows.Scan(
			&id, &orderID, &orderNumber, &customerName, &providerName,
			&governorateID, &amount, &processedAmount, &reason, &status,
			&escalated, &providerAction, &reviewNotes, &processNotes, &createdAt,
		)
		if err != nil {
			return ListRefundsQueryResponse{}, err
		}

		refundID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListRefundsQueryResponse{}, idErr
		}
		linkedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return ListRefundsQueryResponse{}, idErr
		}

		refundStatus, stErr := refund.StatusFromString(status)
		if stErr != nil {
			return ListRefundsQueryResponse{}, stErr
		}

		governorateName, ok := governorateNames[governorateID]
		if !ok {
			governorateName, err = h.geo.GovernorateName(ctx, governorateID)
			if err != nil {
				return ListRefundsQueryResponse{}, err
			}
			governorateNames[governorateID] = governorateName
		}

		items = append(items, RefundListItem{
			ID:               refundID,
			OrderID:          linkedOrderID,
			OrderNumber:      orderNumber,
			CustomerName:     customerName,
			ProviderName:     providerName,
			GovernorateName:  governorateName,
			Amount:           amount,
			ProcessedAmount:  processedAmount,
			Reason:           reason,
			Status:           refundStatus,
			EscalatedToAdmin: escalated,
			ProviderAction:   providerAction,
			ReviewNotes:      reviewNotes,
			ProcessingNotes:  processNotes,
			CreatedAt:        createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return ListRefundsQueryResponse{}, err
	}

	return ListRefundsQueryResponse{
		Refunds: items,
		Stats:   stats,
		Total:   total,
	}, nil
}

func (h ListRefundsQueryHandler) loadStats(
	ctx context.Context,
	scopeCond string,
	scopeArgs []any,
) (RefundStats, error) {
	where := ""
	if scopeCond != "" {
		where = "WHERE " + scopeCond
	}

	var stats RefundStats
	row := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE r.status = 'pending'),
			COUNT(*) FILTER (WHERE r.status = 'approved'),
			COUNT(*) FILTER (WHERE r.status = 'processed'),
			COUNT(*) FILTER (WHERE r.escalated_to_admin),
			COALESCE(SUM(r.processed_amount) FILTER (WHERE r.status = 'processed'), 0)
		FROM refunds r
		JOIN providers p ON p.id = r.provider_id
		%s
	`, where), scopeArgs...).Row()

	err := row.Scan(
		&stats.PendingCount,
		&stats.ApprovedCount,
		&stats.ProcessedCount,
		&stats.EscalatedCount,
		&stats.TotalProcessedAmount,
	)
	if err != nil {
		return RefundStats{}, err
	}
	return stats, nil
}

func scopeCondition(scope ports.RefundScope) (string, []any) {
	if scope.AllGovernorates {
		return "", nil
	}
	return "p.governorate_id IN ?", []any{scope.GovernorateIDs}
}
