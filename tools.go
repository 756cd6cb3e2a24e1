//go:build tools

package ubj

// Development-only tooling, pinned in go.mod so `go mod tidy` doesn't
// drop them, the way damianoneill/net pins its release/lint toolchain.
// Nothing here is ever imported by library code; the "tools" build tag
// keeps it out of ordinary builds.
import (
	_ "github.com/git-chglog/git-chglog/cmd/git-chglog"
	_ "github.com/google/addlicense"
	_ "github.com/mcubik/goverreport"
	_ "github.com/psampaz/go-mod-outdated"
	_ "github.com/securego/gosec/cmd/gosec"
	_ "github.com/segmentio/golines"
	_ "github.com/uw-labs/lichen"
	_ "mvdan.cc/gofumpt"
)
