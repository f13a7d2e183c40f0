package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/nav"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

func (r *NormalizationResult) warn(w string) {
	if w != "" {
		r.Warnings = append(r.Warnings, w)
	}
}

// NormalizeConfig canonicalizes enumerated fields before defaults are applied.
// It mutates c in place and returns the coercions it made.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	if c.OnBrokenLinks != "" {
		r := brokenLinkNormalizer.NormalizeWithWarning("onBrokenLinks", string(c.OnBrokenLinks))
		c.OnBrokenLinks = r.Value
		res.warn(r.Warning)
	}
	if c.OnBrokenMarkdownLinks != "" {
		r := brokenLinkNormalizer.NormalizeWithWarning("onBrokenMarkdownLinks", string(c.OnBrokenMarkdownLinks))
		c.OnBrokenMarkdownLinks = r.Value
		res.warn(r.Warning)
	}
	if c.Footer.Style != "" {
		r := footerStyleNormalizer.NormalizeWithWarning("footer.style", string(c.Footer.Style))
		c.Footer.Style = r.Value
		res.warn(r.Warning)
	}
	for i := range c.Navbar.Items {
		normalizePosition(&c.Navbar.Items[i], fmt.Sprintf("navbar.items[%d].position", i), res)
	}

	c.Title = strings.TrimSpace(c.Title)
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	return res, nil
}

func normalizePosition(item *nav.Item, field string, res *NormalizationResult) {
	raw := string(item.Position)
	if raw == "" {
		return
	}
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	switch nav.Position(cleaned) {
	case nav.PositionLeft, nav.PositionRight:
		if cleaned != raw {
			res.warn(fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, cleaned))
		}
		item.Position = nav.Position(cleaned)
	default:
		res.warn(fmt.Sprintf("unknown position %q for %s, using %s", raw, field, nav.PositionLeft))
		item.Position = nav.PositionLeft
	}
}
