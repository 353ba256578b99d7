package core

import (
	"errors"

	"github.com/google/uuid"
)

// NotificationLevel is the toast style shown in the browser.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a transient message for the user.
type Notification struct {
	ID      string            `json:"id"`
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
}

// IsZero reports whether n carries nothing to show.
func (n Notification) IsZero() bool {
	return n.Level == "" && n.Message == ""
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{ID: uuid.NewString(), Level: LevelSuccess, Title: "Success", Message: message}
}

// Info builds an informational notification.
func Info(message string) Notification {
	return Notification{ID: uuid.NewString(), Level: LevelInfo, Title: "Notice", Message: message}
}

// Failure builds an error notification for err. fallback replaces the text
// when err maps to ERR000 or is a remote rejection without a server message.
func Failure(err error, fallback string) Notification {
	msg := MapError(err)
	n := Notification{
		ID:      uuid.NewString(),
		Level:   LevelError,
		Title:   "Error",
		Message: msg.Message,
		Code:    msg.Code,
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		n.Title = "Validation error"
	}
	if fallback == "" {
		return n
	}

	// A rejected call without a server explanation gets the caller's wording.
	var re *RemoteError
	if msg.Code == defaultMessage.Code || (errors.As(err, &re) && re.Status != 0 && re.Message == "") {
		n.Message = fallback
	}
	return n
}
