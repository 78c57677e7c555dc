package refund

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the review state of a refund request.
//
// State transitions:
//
//	Pending ──┬──> Approved ──> Processed
//	          │
//	          └──> Rejected
//
// Rejected, Processed, and Failed are terminal: once reached, the refund is
// immutable. Failed is produced by an external disbursement process and no
// transition in this package targets it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status of a newly requested refund,
	// awaiting an admin reviewer's decision.
	Pending

	// Approved means a reviewer accepted the claim; the refund awaits
	// disbursement via the process step.
	Approved

	// Rejected means a reviewer declined the claim. Terminal.
	Rejected

	// Processed means the refund was disbursed. Terminal.
	Processed

	// Failed means an external disbursement attempt failed. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		Approved:      "approved",
		Rejected:      "rejected",
		Processed:     "processed",
		Failed:        "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Approved:  "approved",
		Rejected:  "rejected",
		Processed: "processed",
		Failed:    "failed",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid refund status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid refund status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the refund is immutable: Rejected, Processed, Failed.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Processed || s == Failed
}

// Approve transitions the status to Approved. Valid only from Pending.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()),
		)
	}
	return Approved, nil
}

// Reject transitions the status to Rejected. Valid only from Pending.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}
	return Rejected, nil
}

// Process transitions the status to Processed. Valid only from Approved.
func (s Status) Process() (Status, error) {
	if s != Approved {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to process", s.String()),
		)
	}
	return Processed, nil
}
