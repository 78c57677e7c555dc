// Package refund implements the Refund aggregate: a monetary claim against one
// order, reviewed by a platform admin.
//
// A refund is created pending, moves to approved or rejected by a reviewer,
// and from approved to processed by a processor. Rejected, processed, and
// failed are terminal; the engine never writes failed itself, it exists for an
// external disbursement process. Reaching a terminal state is what allows the
// linked order to become settlement-eligible again.
package refund
