package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApproveRefundCommand_ValidInput(t *testing.T) {
	refundID := kernel.NewUUID()
	reviewerID := kernel.NewUUID()
	notes := "ok"
	cmd, err := commands.NewApproveRefundCommand(refundID, reviewerID, &notes)
	require.NoError(t, err)
	assert.Equal(t, refundID, cmd.RefundID())
	assert.Equal(t, reviewerID, cmd.ReviewerID())
	require.NotNil(t, cmd.Notes())
	assert.Equal(t, "ok", *cmd.Notes())
}

func TestNewApproveRefundCommand_NotesOptional(t *testing.T) {
	cmd, err := commands.NewApproveRefundCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.Notes())
}

func TestNewApproveRefundCommand_InvalidRefundID(t *testing.T) {
	_, err := commands.NewApproveRefundCommand(kernel.UUID{}, kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewApproveRefundCommand_InvalidReviewerID(t *testing.T) {
	_, err := commands.NewApproveRefundCommand(kernel.NewUUID(), kernel.UUID{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
