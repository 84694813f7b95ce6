package ecode

import (
	"fmt"
)

const (
	existMsg       = "already exists"
	notExistMsg    = "does not exist"
	invalidMsg     = "invalid"
	mismatchMsg    = "does not match"
	unsupportedMsg = "unsupported"
	failedMsg      = "failed"
)

// AlreadyExist returns already exist message
func AlreadyExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], existMsg)
	}
	return existMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// Invalid returns invalid message
func Invalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// Mismatch returns mismatch message
func Mismatch(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], mismatchMsg)
	}
	return mismatchMsg
}

// Unsupported returns unsupported message
func Unsupported(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", unsupportedMsg, k[0])
	}
	return unsupportedMsg
}

// Failed returns failed message
func Failed(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], failedMsg)
	}
	return failedMsg
}
