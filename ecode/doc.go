// Package ecode provides shared error-message helpers.
//
// The helpers build consistent, human-readable message fragments for the
// typed errors defined in the codec and event packages:
//
//	ecode.AlreadyExist(`event "tick"`)
//	// Returns: `event "tick" already exists`
//
//	ecode.Mismatch("signature")
//	// Returns: "signature does not match"
package ecode
