package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceOrderCommand(id, order.Accepted)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("UpdateStatus", mock.Anything, id, order.Accepted, order.Preparing, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_FullChain(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	steps := []struct {
		from order.Status
		to   order.Status
	}{
		{order.Accepted, order.Preparing},
		{order.Preparing, order.Ready},
		{order.Ready, order.OutForDelivery},
		{order.OutForDelivery, order.Delivered},
	}

	for _, step := range steps {
		t.Run(step.from.String(), func(t *testing.T) {
			cmd, err := commands.NewAdvanceOrderCommand(id, step.from)
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("UpdateStatus", mock.Anything, id, step.from, step.to, mock.AnythingOfType("time.Time")).
					Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewAdvanceOrderCommandHandler(factory)
			require.NoError(t, h.Handle(ctx, cmd))
			repo.AssertExpectations(t)
		})
	}
}

func TestAdvanceOrderCommandHandler_Handle_NoSuccessorIsNoOp(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	for _, status := range []order.Status{order.Delivered, order.Cancelled, order.Rejected, order.Pending} {
		t.Run(status.String(), func(t *testing.T) {
			cmd, err := commands.NewAdvanceOrderCommand(id, status)
			require.NoError(t, err)

			factory := new(MockOrderUoWFactory)

			h := commands.NewAdvanceOrderCommandHandler(factory)
			require.NoError(t, h.Handle(ctx, cmd))
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestAdvanceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AdvanceOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewAdvanceOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestAdvanceOrderCommandHandler_Handle_StaleState(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceOrderCommand(id, order.Ready)

	staleErr := errs.NewStaleStateError("order", id.String(), order.Ready.String())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("UpdateStatus", mock.Anything, id, order.Ready, order.OutForDelivery, mock.AnythingOfType("time.Time")).
			Return(staleErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStaleState)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
