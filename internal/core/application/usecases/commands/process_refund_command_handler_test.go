package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/refund"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessRefundCommandHandler_Handle_Success_FullAmount(t *testing.T) {
	ctx := t.Context()
	refundID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	processorID := kernel.NewUUID()
	cmd, _ := commands.NewProcessRefundCommand(refundID, processorID, nil, nil)

	ref := pendingRefund(t, refundID, orderID, 42.50)

	refundRepo := new(MockRefundRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockRefundUoW)
	uow.On("RefundRepository").Return(refundRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	mock.InOrder(
		refundRepo.On("Get", mock.Anything, refundID).Return(ref, nil).Once(),
		refundRepo.On("Process", mock.Anything, refundID, processorID, 42.50, (*string)(nil), mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		orderRepo.On("ReleaseHoldAndMarkRefunded", mock.Anything, orderID).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessRefundCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	refundRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestProcessRefundCommandHandler_Handle_Success_PartialAmount(t *testing.T) {
	ctx := t.Context()
	refundID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	processorID := kernel.NewUUID()
	override := 20.00
	notes := "partial refund, item partially damaged"
	cmd, _ := commands.NewProcessRefundCommand(refundID, processorID, &override, &notes)

	ref := pendingRefund(t, refundID, orderID, 42.50)

	refundRepo := new(MockRefundRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockRefundUoW)
	uow.On("RefundRepository").Return(refundRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	mock.InOrder(
		refundRepo.On("Get", mock.Anything, refundID).Return(ref, nil).Once(),
		refundRepo.On("Process", mock.Anything, refundID, processorID, 20.00, &notes, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		orderRepo.On("ReleaseHoldAndMarkRefunded", mock.Anything, orderID).Return(nil).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessRefundCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	refundRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestProcessRefundCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ProcessRefundCommand{} // not constructed properly
	factory := new(MockRefundUoWFactory)
	h := commands.NewProcessRefundCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestProcessRefundCommandHandler_Handle_StaleRefundSkipsOrderWrite(t *testing.T) {
	ctx := t.Context()
	refundID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	processorID := kernel.NewUUID()
	cmd, _ := commands.NewProcessRefundCommand(refundID, processorID, nil, nil)

	ref := pendingRefund(t, refundID, orderID, 42.50)
	staleErr := errs.NewStaleStateError("refund", refundID.String(), refund.Approved.String())

	refundRepo := new(MockRefundRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockRefundUoW)
	uow.On("RefundRepository").Return(refundRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	mock.InOrder(
		refundRepo.On("Get", mock.Anything, refundID).Return(ref, nil).Once(),
		refundRepo.On("Process", mock.Anything, refundID, processorID, 42.50, (*string)(nil), mock.AnythingOfType("time.Time")).
			Return(staleErr).Once(),
	)

	factory := new(MockRefundUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessRefundCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStaleState)
	// Only the winning disbursement settles the order.
	orderRepo.AssertNotCalled(t, "ReleaseHoldAndMarkRefunded", mock.Anything, mock.Anything)
}
