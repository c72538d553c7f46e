//go:build !udger_homepage

package uainfo

// homepageFields is the empty variant compiled when the "homepage" feature
// group is disabled.
type homepageFields struct{}
