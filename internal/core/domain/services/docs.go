// Package services holds domain services that need more than one aggregate.
//
// The package includes:
//   - Roster: resolves the role of a chat user from the administrator id,
//     the configured executor ids and the executor registry
package services
