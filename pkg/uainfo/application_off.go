//go:build !udger_application

package uainfo

// applicationFields is the empty variant compiled when the "application"
// feature group is disabled.
type applicationFields struct{}
