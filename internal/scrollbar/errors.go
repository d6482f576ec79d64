package scrollbar

import "errors"

var (
	// ErrMissingViewport means the host has no scroll container
	ErrMissingViewport = errors.New("scrollbar: viewport element is missing")
	// ErrMissingContent means the host has no content wrapper
	ErrMissingContent = errors.New("scrollbar: content element is missing")
	// ErrElementNotFound means a ScrollToElement selector matched nothing
	ErrElementNotFound = errors.New("scrollbar: element not found")
)
