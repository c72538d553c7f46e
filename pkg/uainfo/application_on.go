//go:build udger_application

package uainfo

// applicationFields carries the optional "application" feature group.
// Currently detect_application populates nothing; the fields exist so the
// pipeline has somewhere to write to once it does.
type applicationFields struct {
	ApplicationName    string `json:"application_name"`
	ApplicationVersion string `json:"application_version"`
}
