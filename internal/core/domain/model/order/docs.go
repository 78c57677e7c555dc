// Package order implements the Order aggregate for the marketplace fulfillment
// engine.
//
// An order carries three independent status axes that different actors mutate
// concurrently: the provider's operator drives the fulfillment Status, the cash
// confirmation sub-flow and the refund engine both write PaymentStatus, and the
// refund engine alone drives SettlementStatus together with the hold fields.
//
// The package enforces the settlement hold invariant: an order is on hold
// exactly when it carries a hold reason and review deadline, and the three
// fields are only ever written together.
package order
