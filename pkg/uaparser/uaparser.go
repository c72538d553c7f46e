// Package uaparser implements the Parser: the orchestration of detect_client,
// detect_os, detect_application, detect_device_class, and detect_device_brand
// over a shared UaInfo record.
package uaparser

import (
	"github.com/praetorian-inc/udgerua/pkg/catalogue"
	"github.com/praetorian-inc/udgerua/pkg/keyword"
	"github.com/praetorian-inc/udgerua/pkg/parsectx"
	"github.com/praetorian-inc/udgerua/pkg/ruleset"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

// Parser holds the immutable, shared-read RuleCatalogue. It is safe to call
// Parse concurrently from multiple goroutines as long as each goroutine
// brings its own *parsectx.Context.
type Parser struct {
	cat *catalogue.Catalogue
}

// New wraps cat in a Parser.
func New(cat *catalogue.Catalogue) *Parser {
	return &Parser{cat: cat}
}

// Parse classifies ua using ctx's scratch state and cache: cache-check ->
// detect_client -> detect_os -> detect_application -> detect_device_class ->
// detect_device_brand -> cache-insert.
func (p *Parser) Parse(ua string, ctx *parsectx.Context) (*uainfo.Info, error) {
	if cached, ok := ctx.CacheGet(ua); ok {
		return cached, nil
	}

	info := uainfo.New(ua)
	subject := []byte(ua)

	classID, hasClassID, err := p.detectClient(subject, info, ctx)
	if err != nil {
		return nil, err
	}

	if err := p.detectOS(subject, info, ctx); err != nil {
		return nil, err
	}

	if err := p.detectApplication(subject, info, ctx); err != nil {
		return nil, err
	}

	if err := p.detectDeviceClass(subject, info, ctx, classID, hasClassID); err != nil {
		return nil, err
	}

	if err := p.detectDeviceBrand(subject, info, ctx); err != nil {
		return nil, err
	}

	ctx.CachePut(ua, info)
	return info, nil
}

// detectClient runs the crawler fast path, the keyword-empty "unrecognized"
// short circuit, and the regex-best path with version extraction. An empty
// client keyword set or no qualifying client rule sets ua_class and
// ua_class_code to "unrecognized". It returns
// the resolved class_id from the winning client row (if any) for
// detectDeviceClass's fallback.
func (p *Parser) detectClient(subject []byte, info *uainfo.Info, ctx *parsectx.Context) (classID uint16, hasClassID bool, err error) {
	crawlerRow, found, err := ctx.Store.Crawler(info.UaString)
	if err != nil {
		return 0, false, err
	}
	if found {
		crawlerRow.ApplyTo(info)
		return 0, false, nil
	}

	words := p.cat.ClientKeywords.Match(subject)
	if len(words) == 0 {
		info.UaClass = "unrecognized"
		info.UaClassCode = "unrecognized"
		return 0, false, nil
	}
	candidates := keyword.Set(words)

	best, ok, err := p.cat.Client.Lookup(subject, ctx.ClientScratch(), candidates)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		info.UaClass = "unrecognized"
		info.UaClassCode = "unrecognized"
		return 0, false, nil
	}

	row, found, err := ctx.Store.Client(best.Rowid)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}
	classID, hasClassID = row.ApplyTo(info)

	if best.HasCapture {
		applyVersionCapture(info, subject, best)
	}
	return classID, hasClassID, nil
}

// applyVersionCapture fills ua, ua_version, ua_version_major, and
// ua_version_minor from the client rule's captured version substring.
func applyVersionCapture(info *uainfo.Info, subject []byte, best ruleset.Best) {
	if best.CapStart < 0 || best.CapEnd > len(subject) || best.CapStart >= best.CapEnd {
		return
	}
	version := string(subject[best.CapStart:best.CapEnd])
	info.UaVersion = version
	info.Ua = info.Ua + " " + version

	major, minor := splitVersion(version)
	info.UaVersionMajor = major
	info.UaVersionMinor = minor
}

// splitVersion splits "12.3.4" into major="12" and minor="3.4".
func splitVersion(version string) (major, minor string) {
	for i := 0; i < len(version); i++ {
		if version[i] == '.' {
			return version[:i], version[i+1:]
		}
	}
	return version, ""
}

// detectOS runs a plain keyword-prescreen + regex-best lookup with no
// capture, leaving os_* fields empty when no rule qualifies.
func (p *Parser) detectOS(subject []byte, info *uainfo.Info, ctx *parsectx.Context) error {
	words := p.cat.OsKeywords.Match(subject)
	if len(words) == 0 {
		return nil
	}
	candidates := keyword.Set(words)

	best, ok, err := p.cat.Os.Lookup(subject, ctx.OsScratch(), candidates)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	row, found, err := ctx.Store.OS(best.Rowid)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	row.ApplyTo(info)
	return nil
}

// detectDeviceClass runs a direct deviceclass regex lookup, falling back to
// the winning client rule's class_id when no device rule qualifies directly.
func (p *Parser) detectDeviceClass(subject []byte, info *uainfo.Info, ctx *parsectx.Context, classID uint16, hasClassID bool) error {
	words := p.cat.DeviceClassKeywords.Match(subject)
	if len(words) > 0 {
		candidates := keyword.Set(words)
		best, ok, err := p.cat.DeviceClass.Lookup(subject, ctx.DeviceClassScratch(), candidates)
		if err != nil {
			return err
		}
		if ok {
			row, found, err := ctx.Store.Device(best.Rowid)
			if err != nil {
				return err
			}
			if found {
				row.ApplyTo(info)
				return nil
			}
		}
	}

	if !hasClassID {
		return nil
	}
	row, found, err := ctx.Store.ClientClass(classID)
	if err != nil {
		return err
	}
	if found {
		row.ApplyTo(info)
	}
	return nil
}

// detectDeviceBrand requires both os_family_code and os_code to be
// non-empty, builds a candidate word set from the two codes via
// os_code_to_word, and resolves the winning rule's captured device-model
// code against udger_devicename_list.
func (p *Parser) detectDeviceBrand(subject []byte, info *uainfo.Info, ctx *parsectx.Context) error {
	if info.OsFamilyCode == "" || info.OsCode == "" {
		return nil
	}

	candidates := make(map[uint16]bool, 2)
	if w, ok := p.cat.OsCodeToWord[info.OsFamilyCode]; ok {
		candidates[w] = true
	}
	if w, ok := p.cat.OsCodeToWord[info.OsCode]; ok {
		candidates[w] = true
	}
	if len(candidates) == 0 {
		return nil
	}

	best, ok, err := p.cat.DeviceName.Lookup(subject, ctx.DeviceNameScratch(), candidates)
	if err != nil {
		return err
	}
	if !ok || !best.HasCapture {
		return nil
	}

	code := string(subject[best.CapStart:best.CapEnd])
	row, found, err := ctx.Store.DeviceNameList(best.ID, code)
	if err != nil {
		return err
	}
	if found {
		row.ApplyTo(info)
	}
	return nil
}
