// Package models holds the typed resource objects returned by the client.
// All types are plain immutable values: produced once per hydration call,
// owned entirely by the caller, safe to copy and share.
package models
