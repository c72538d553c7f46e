//go:build udger_application

package uaparser

import (
	"github.com/praetorian-inc/udgerua/pkg/keyword"
	"github.com/praetorian-inc/udgerua/pkg/parsectx"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

// detectApplication runs the optional application keyword index and regex
// list. No fields are populated yet; this exercises the same two-stage
// pipeline shape for a future schema extension.
func (p *Parser) detectApplication(subject []byte, info *uainfo.Info, ctx *parsectx.Context) error {
	if p.cat.Application == nil {
		return nil
	}
	words := p.cat.ApplicationKeywords.Match(subject)
	if len(words) == 0 {
		return nil
	}
	candidates := keyword.Set(words)
	if _, _, err := p.cat.Application.Lookup(subject, ctx.ApplicationScratch(), candidates); err != nil {
		return err
	}
	return nil
}
