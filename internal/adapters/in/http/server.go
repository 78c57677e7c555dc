// Package http exposes the order lifecycle, refund review and list
// operations over a hand-written echo API. The acting provider comes from the
// route, the acting admin from the X-Admin-ID header set by the auth proxy;
// neither is ever read from a request body.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/realtime"

	"github.com/labstack/echo/v4"
)

const adminIDHeader = "X-Admin-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	acceptOrderHandler        commands.AcceptOrderCommandHandler
	rejectOrderHandler        commands.RejectOrderCommandHandler
	advanceOrderHandler       commands.AdvanceOrderCommandHandler
	confirmCashHandler        commands.ConfirmCashPaymentCommandHandler
	approveRefundHandler      commands.ApproveRefundCommandHandler
	rejectRefundHandler       commands.RejectRefundCommandHandler
	processRefundHandler      commands.ProcessRefundCommandHandler
	listRefundsHandler        queries.ListRefundsQueryHandler
	getProviderOrdersHandler  queries.GetProviderOrdersQueryHandler
	syncAdapter               *realtime.SyncAdapter
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	confirmCashHandler commands.ConfirmCashPaymentCommandHandler,
	approveRefundHandler commands.ApproveRefundCommandHandler,
	rejectRefundHandler commands.RejectRefundCommandHandler,
	processRefundHandler commands.ProcessRefundCommandHandler,
	listRefundsHandler queries.ListRefundsQueryHandler,
	getProviderOrdersHandler queries.GetProviderOrdersQueryHandler,
	syncAdapter *realtime.SyncAdapter,
) *Server {
	return &Server{
		acceptOrderHandler:       acceptOrderHandler,
		rejectOrderHandler:       rejectOrderHandler,
		advanceOrderHandler:      advanceOrderHandler,
		confirmCashHandler:       confirmCashHandler,
		approveRefundHandler:     approveRefundHandler,
		rejectRefundHandler:      rejectRefundHandler,
		processRefundHandler:     processRefundHandler,
		listRefundsHandler:       listRefundsHandler,
		getProviderOrdersHandler: getProviderOrdersHandler,
		syncAdapter:              syncAdapter,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/providers/:providerId/orders", s.GetProviderOrders)
	api.GET("/providers/:providerId/orders/stream", s.StreamProviderOrders)
	api.POST("/providers/:providerId/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/providers/:providerId/orders/:orderId/reject", s.RejectOrder)
	api.POST("/providers/:providerId/orders/:orderId/advance", s.AdvanceOrder)
	api.POST("/providers/:providerId/orders/:orderId/confirm-cash", s.ConfirmCashPayment)

	api.GET("/refunds", s.ListRefunds)
	api.POST("/refunds/:refundId/approve", s.ApproveRefund)
	api.POST("/refunds/:refundId/reject", s.RejectRefund)
	api.POST("/refunds/:refundId/process", s.ProcessRefund)
}

// Error is the JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP statuses. Stale-state
// conflicts become 409 so clients know to re-read and retry rather than
// treat the response as a failure.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderDoesNotBelongToProvider):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrStaleState):
		code = http.StatusConflict
	case errors.Is(err, order.ErrNotCashPayable),
		errors.Is(err, commands.ErrClaimedTotalMismatch):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// AcceptOrder handles POST /api/v1/providers/:providerId/orders/:orderId/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/providers/:providerId/orders/:orderId/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderRequest carries the fulfillment status the operator observed.
type AdvanceOrderRequest struct {
	CurrentStatus string `json:"current_status"`
}

// AdvanceOrder handles POST /api/v1/providers/:providerId/orders/:orderId/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	current, err := order.StatusFromString(req.CurrentStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, current)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmCashPaymentRequest carries the cash amount the operator collected.
type ConfirmCashPaymentRequest struct {
	Total float64 `json:"total"`
}

// ConfirmCashPayment handles POST /api/v1/providers/:providerId/orders/:orderId/confirm-cash.
func (s *Server) ConfirmCashPayment(ctx echo.Context) error {
	providerID, err := pathUUID(ctx, "providerId")
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req ConfirmCashPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewConfirmCashPaymentCommand(orderID, providerID, req.Total)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmCashHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewRefundRequest carries optional reviewer notes.
type ReviewRefundRequest struct {
	Notes *string `json:"notes"`
}

// ApproveRefund handles POST /api/v1/refunds/:refundId/approve.
func (s *Server) ApproveRefund(ctx echo.Context) error {
	adminID, err := kernel.UUIDFromString(ctx.Request().Header.Get(adminIDHeader))
	if err != nil {
		return writeError(ctx, err)
	}
	refundID, err := pathUUID(ctx, "refundId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req ReviewRefundRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewApproveRefundCommand(refundID, adminID, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.approveRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectRefundRequest carries the mandatory rejection notes.
type RejectRefundRequest struct {
	Notes string `json:"notes"`
}

// RejectRefund handles POST /api/v1/refunds/:refundId/reject.
func (s *Server) RejectRefund(ctx echo.Context) error {
	adminID, err := kernel.UUIDFromString(ctx.Request().Header.Get(adminIDHeader))
	if err != nil {
		return writeError(ctx, err)
	}
	refundID, err := pathUUID(ctx, "refundId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req RejectRefundRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRejectRefundCommand(refundID, adminID, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessRefundRequest carries the optional disbursement override and notes.
type ProcessRefundRequest struct {
	Amount *float64 `json:"amount"`
	Notes  *string  `json:"notes"`
}

// ProcessRefund handles POST /api/v1/refunds/:refundId/process.
func (s *Server) ProcessRefund(ctx echo.Context) error {
	adminID, err := kernel.UUIDFromString(ctx.Request().Header.Get(adminIDHeader))
	if err != nil {
		return writeError(ctx, err)
	}
	refundID, err := pathUUID(ctx, "refundId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req ProcessRefundRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewProcessRefundCommand(refundID, adminID, req.Amount, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.processRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProviderOrder is one row of the provider order list response.
type ProviderOrder struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"order_number"`
	Total            float64    `json:"total"`
	PaymentMethod    string     `json:"payment_method"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	SettlementStatus string     `json:"settlement_status"`
	HoldReason       *string    `json:"hold_reason,omitempty"`
	HoldUntil        *time.Time `json:"hold_until,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	PreparingAt      *time.Time `json:"preparing_at,omitempty"`
	ReadyAt          *time.Time `json:"ready_at,omitempty"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
}

// GetProviderOrders handles GET /api/v1/providers/:providerId/orders.
func (s *Server) GetProviderOrders(ctx echo.Context) error {
	providerID, err := pathUUID(ctx, "providerId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetProviderOrdersQuery(providerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getProviderOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProviderOrders(orders))
}

func toProviderOrders(orders []queries.GetProviderOrdersQueryResponse) []ProviderOrder {
	response := make([]ProviderOrder, len(orders))
	for i, o := range orders {
		response[i] = ProviderOrder{
			ID:               o.ID.String(),
			OrderNumber:      o.OrderNumber,
			Total:            o.Total,
			PaymentMethod:    o.PaymentMethod.String(),
			Status:           o.Status.String(),
			PaymentStatus:    o.PaymentStatus.String(),
			SettlementStatus: o.SettlementStatus.String(),
			HoldReason:       o.HoldReason,
			HoldUntil:        o.HoldUntil,
			CreatedAt:        o.CreatedAt,
			AcceptedAt:       o.AcceptedAt,
			PreparingAt:      o.PreparingAt,
			ReadyAt:          o.ReadyAt,
			OutForDeliveryAt: o.OutForDeliveryAt,
			DeliveredAt:      o.DeliveredAt,
			CancelledAt:      o.CancelledAt,
		}
	}
	return response
}

// StreamProviderOrders handles GET /api/v1/providers/:providerId/orders/stream.
// It serves the provider's order list as server-sent events: one full snapshot
// per change signal, starting with an immediate first paint. The stream stays
// open until the client disconnects.
func (s *Server) StreamProviderOrders(ctx echo.Context) error {
	providerID, err := pathUUID(ctx, "providerId")
	if err != nil {
		return writeError(ctx, err)
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	return s.syncAdapter.Run(ctx.Request().Context(), providerID, func(snapshot realtime.Snapshot) {
		payload, err := json.Marshal(toProviderOrders(snapshot))
		if err != nil {
			return
		}
		fmt.Fprintf(resp, "data: %s\n\n", payload)
		resp.Flush()
	})
}

// RefundRow is one row of the refund review list response.
type RefundRow struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	OrderNumber      string    `json:"order_number"`
	CustomerName     string    `json:"customer_name"`
	ProviderName     string    `json:"provider_name"`
	GovernorateName  string    `json:"governorate_name"`
	Amount           float64   `json:"amount"`
	ProcessedAmount  *float64  `json:"processed_amount,omitempty"`
	Reason           string    `json:"reason"`
	Status           string    `json:"status"`
	EscalatedToAdmin bool      `json:"escalated_to_admin"`
	ProviderAction   *string   `json:"provider_action,omitempty"`
	ReviewNotes      *string   `json:"review_notes,omitempty"`
	ProcessingNotes  *string   `json:"processing_notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// RefundListResponse is the refund review list plus its dashboard stats.
type RefundListResponse struct {
	Refunds []RefundRow `json:"refunds"`
	Total   int64       `json:"total"`
	Stats   struct {
		Pending              int64   `json:"pending"`
		Approved             int64   `json:"approved"`
		Processed            int64   `json:"processed"`
		Escalated            int64   `json:"escalated"`
		TotalProcessedAmount float64 `json:"total_processed_amount"`
	} `json:"stats"`
}

// ListRefunds handles GET /api/v1/refunds.
func (s *Server) ListRefunds(ctx echo.Context) error {
	adminID, err := kernel.UUIDFromString(ctx.Request().Header.Get(adminIDHeader))
	if err != nil {
		return writeError(ctx, err)
	}

	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "invalid page",
			})
		}
	}

	pageSize := 0
	if raw := ctx.QueryParam("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "invalid page_size",
			})
		}
	}

	query, err := queries.NewListRefundsQuery(
		adminID,
		ctx.QueryParam("status"),
		ctx.QueryParam("search"),
		ctx.QueryParam("governorate"),
		page,
		pageSize,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listRefundsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := RefundListResponse{
		Refunds: make([]RefundRow, len(result.Refunds)),
		Total:   result.Total,
	}
	response.Stats.Pending = result.Stats.PendingCount
	response.Stats.Approved = result.Stats.ApprovedCount
	response.Stats.Processed = result.Stats.ProcessedCount
	response.Stats.Escalated = result.Stats.EscalatedCount
	response.Stats.TotalProcessedAmount = result.Stats.TotalProcessedAmount

	for i, r := range result.Refunds {
		var action *string
		if r.ProviderAction != nil {
			action = r.ProviderAction
		}
		response.Refunds[i] = RefundRow{
			ID:               r.ID.String(),
			OrderID:          r.OrderID.String(),
			OrderNumber:      r.OrderNumber,
			CustomerName:     r.CustomerName,
			ProviderName:     r.ProviderName,
			GovernorateName:  r.GovernorateName,
			Amount:           r.Amount,
			ProcessedAmount:  r.ProcessedAmount,
			Reason:           r.Reason,
			Status:           r.Status.String(),
			EscalatedToAdmin: r.EscalatedToAdmin,
			ProviderAction:   action,
			ReviewNotes:      r.ReviewNotes,
			ProcessingNotes:  r.ProcessingNotes,
			CreatedAt:        r.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
