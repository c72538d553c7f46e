//go:build !udger_application

package uaparser

import (
	"github.com/praetorian-inc/udgerua/pkg/parsectx"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

// detectApplication is a no-op when the application feature group is
// compiled out.
func (p *Parser) detectApplication(subject []byte, info *uainfo.Info, ctx *parsectx.Context) error {
	return nil
}
