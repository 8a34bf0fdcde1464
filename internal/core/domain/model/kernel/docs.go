// Package kernel provides the value objects shared by every aggregate of the
// order desk: actor identity and roles, validated numeric and date input,
// uploaded file references and UUIDs.
//
// Parsing helpers in this package are the single place where raw chat input
// becomes typed values. They reject malformed input with errs.ValueIsInvalidError
// so gateways can re-prompt without touching any order.
package kernel
