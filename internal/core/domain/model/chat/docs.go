// Package chat describes what crosses the chat transport: inbound actor
// events and outbound messages.
//
// Inbound events are a closed set of variants (Text, FileUpload, ButtonPress)
// sharing one Origin. Buttons carry a compact payload "action:order:value"
// that fits the 64 byte callback limit of common chat platforms.
package chat
