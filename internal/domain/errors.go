package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCredentialsMissing is returned before any network call when API
// credentials are not configured.
var ErrCredentialsMissing = errors.New("API keys not configured")

// ErrTradingPermission signals an API key without futures trading permission.
var ErrTradingPermission = errors.New("API key missing Futures Trading permission. Enable it in Binance API settings.")

// APIError is a structured error body returned by the exchange.
type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("Binance API: %s", e.Msg)
	}
	return fmt.Sprintf("Binance API: code %d", e.Code)
}

// Binance rejects unauthorized keys with -2015 ("Invalid API-key, IP, or
// permissions for action").
const codeInvalidAPIKey = -2015

// IsPermissionError reports whether err looks like a missing trading
// permission. The structured code is checked first; the substring match is a
// compatibility shim for bodies that carry only a message.
func IsPermissionError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == codeInvalidAPIKey {
		return true
	}
	return strings.Contains(apiErr.Msg, "API-key") || strings.Contains(apiErr.Msg, "permissions")
}
