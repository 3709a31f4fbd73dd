// Package links finds broken internal links in generated pages and applies
// the configured broken link policy.
package links

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/monster-js/documentation/internal/site"
)

// BrokenLink is a link on Page whose Target does not resolve.
type BrokenLink struct {
	Page   string
	Target string
}

// BrokenLinksError is returned when broken links are found under the
// "throw" policy.
type BrokenLinksError struct {
	Kind  string
	Links []BrokenLink
}

func (e *BrokenLinksError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "found %d broken %s", len(e.Links), e.Kind)
	for _, l := range e.Links {
		fmt.Fprintf(&b, "\n  - on page %s: %s", l.Page, l.Target)
	}
	return b.String()
}

// Report applies policy to the broken links of the given kind, e.g. "links"
// or "markdown links". Only the throw policy produces an error.
func Report(logger *slog.Logger, policy site.Policy, kind string, broken []BrokenLink) error {
	if len(broken) == 0 {
		return nil
	}

	switch policy {
	case site.PolicyIgnore:
		return nil
	case site.PolicyThrow:
		return &BrokenLinksError{Kind: kind, Links: broken}
	}

	level := slog.LevelWarn
	if policy == site.PolicyLog {
		level = slog.LevelInfo
	}
	for _, l := range broken {
		logger.Log(context.Background(), level, "Broken "+kind, "page", l.Page, "target", l.Target)
	}
	return nil
}
