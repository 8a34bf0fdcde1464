// Package executor models the registry of people who may be assigned orders.
//
// The registry is maintained by the administrator through the chat interface
// (add, delete, list). Registry entries are not linked to orders beyond the
// executor id stored on the order.
package executor
