//go:build !udger_icon

package uainfo

// iconFields is the empty variant compiled when the "icon" feature group
// is disabled.
type iconFields struct{}
