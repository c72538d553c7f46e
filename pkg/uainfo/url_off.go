//go:build !udger_url

package uainfo

// urlFields is the empty variant compiled when the "url" feature group is
// disabled.
type urlFields struct{}
