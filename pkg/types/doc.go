// Package types defines the tab record types, the record-to-domain mapping,
// the store configuration, and the standard error types for the tabvault
// storage system.
package types
