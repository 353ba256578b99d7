package core

// # Error Codes Reference
//
// User-facing errors carry a short code so an operator can find the matching
// log line. Codes are grouped by category:
//
// # Remote API Errors (API001-API099)
//
//	API001 - Catalog unavailable: the remote API could not be reached
//	         Patterns: "connection refused", "no such host"
//	API002 - Catalog timeout: the remote API did not answer in time
//	         Patterns: "timeout", "deadline exceeded"
//	API003 - Catalog rejected the request (4xx with no message)
//	API004 - Catalog server error (5xx with no message)
//	API005 - Catalog paused: the circuit breaker is open
//	         Patterns: "circuit breaker is open", "too many requests"
//	API006 - Unexpected response: the reply body could not be decoded
//	         Patterns: "decode"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Title required
//	VAL002 - Invalid price
//	VAL003 - Description required
//	VAL004 - Image required
//	VAL005 - Invalid image URL
//
// # Mutation Errors (MUT001-MUT099)
//
//	MUT001 - System busy: too many saves in progress
//	MUT002 - Product not found in the working copy
//	MUT003 - Duplicate product id returned by the catalog
//	MUT004 - Catalog not loaded yet
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Nothing to export on the current page
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Typed errors (ValidationError, RemoteError, sentinels) are checked first;
// string patterns are matched case-insensitively with strings.Contains and the
// first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUnavailable = UserMessage{
		Message: "The catalog service could not be reached",
		Action:  "Please try again in a few moments",
		Code:    "API001",
	}
	msgTimeout = UserMessage{
		Message: "The catalog service did not respond in time",
		Action:  "Please try again",
		Code:    "API002",
	}
	msgRejected = UserMessage{
		Message: "The catalog service rejected the request",
		Action:  "Check the form values and try again",
		Code:    "API003",
	}
	msgServerError = UserMessage{
		Message: "The catalog service failed to process the request",
		Action:  "Please try again later",
		Code:    "API004",
	}
	msgBreakerOpen = UserMessage{
		Message: "The catalog service is temporarily unavailable",
		Action:  "Requests are paused after repeated failures. Please wait and try again",
		Code:    "API005",
	}
	msgBadResponse = UserMessage{
		Message: "The catalog service returned an unexpected response",
		Action:  "Please try again or contact support",
		Code:    "API006",
	}
)

var validationMessages = map[Rule]UserMessage{
	RuleTitleRequired:       {Message: "Please enter a title", Code: "VAL001"},
	RulePriceInvalid:        {Message: "Please enter a valid price", Action: "Use a number greater than zero", Code: "VAL002"},
	RuleDescriptionRequired: {Message: "Please enter a description", Code: "VAL003"},
	RuleImagesRequired:      {Message: "Please enter at least one image URL", Action: "Enter one URL per line", Code: "VAL004"},
	RuleImageURLInvalid:     {Message: "Invalid image URL. It must start with http:// or https://", Code: "VAL005"},
}

var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrTooManyMutations, UserMessage{
		Message: "Too many saves are in progress",
		Action:  "Please wait a moment and try again",
		Code:    "MUT001",
	}},
	{ErrProductNotFound, UserMessage{
		Message: "Product not found",
		Action:  "Reload the catalog and try again",
		Code:    "MUT002",
	}},
	{ErrDuplicateProduct, UserMessage{
		Message: "The catalog returned a product that is already listed",
		Action:  "Reload the catalog to refresh the list",
		Code:    "MUT003",
	}},
	{ErrNotLoaded, UserMessage{
		Message: "The catalog has not been loaded yet",
		Action:  "Reload the catalog and try again",
		Code:    "MUT004",
	}},
	{ErrNothingToExport, UserMessage{
		Message: "There are no products to export",
		Action:  "Change the filter or page and try again",
		Code:    "EXP001",
	}},
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// The first matching pattern wins, so specific patterns come first.
var errorPatterns = []errorPattern{
	{pattern: "circuit breaker is open", msg: msgBreakerOpen},
	{pattern: "too many requests", msg: msgBreakerOpen},
	{pattern: "connection refused", msg: msgUnavailable},
	{pattern: "no such host", msg: msgUnavailable},
	{pattern: "connection reset", msg: msgUnavailable},
	{pattern: "deadline exceeded", msg: msgTimeout},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "decode", msg: msgBadResponse},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// A RemoteError carrying a server message surfaces that message verbatim,
// since the catalog's own explanation is the most useful thing to show.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if msg, ok := validationMessages[ve.Rule]; ok {
			return msg
		}
		return UserMessage{Message: ve.Message, Code: "VAL000"}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	var re *RemoteError
	if errors.As(err, &re) && re.Status != 0 {
		msg := msgServerError
		if re.ClientError() {
			msg = msgRejected
		}
		if re.Message != "" {
			msg.Message = re.Message
		}
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Action == "" {
		return fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
