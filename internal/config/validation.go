package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// ValidateConfig checks site-level fields and the navigation item shapes.
// Sidebar trees are validated when the site is assembled, since resolution
// needs the content catalog.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, step := range []func() error{
		v.validateSite,
		v.validateNavbar,
		v.validateFooter,
		v.validateAPI,
		v.validateNotify,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func (v *configurationValidator) validateSite() error {
	c := v.config
	if strings.TrimSpace(c.Title) == "" {
		return ferrors.ValidationError("title is required").Build()
	}
	if c.URL != "" {
		if err := validateAbsoluteURL(c.URL); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid url").
				WithContext("url", c.URL).Fatal().Build()
		}
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		return ferrors.ValidationError(fmt.Sprintf("baseUrl %q must start and end with /", c.BaseURL)).Build()
	}
	if c.Docs.EditURL != "" {
		if err := validateAbsoluteURL(c.Docs.EditURL); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid docs.editUrl").
				WithContext("url", c.Docs.EditURL).Fatal().Build()
		}
	}
	return nil
}

func (v *configurationValidator) validateNavbar() error {
	if logo := v.config.Navbar.Logo; logo != nil && strings.TrimSpace(logo.Src) == "" {
		return ferrors.ValidationError("navbar.logo.src is required when a logo is set").Build()
	}
	if _, err := nav.BuildNavbar(v.config.Navbar.Items); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid navbar").Fatal().Build()
	}
	return nil
}

func (v *configurationValidator) validateFooter() error {
	if _, err := nav.BuildFooter(v.config.Footer.Links); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid footer").Fatal().Build()
	}
	return nil
}

func (v *configurationValidator) validateAPI() error {
	api := v.config.API
	if api == nil {
		return nil
	}
	if strings.TrimSpace(api.SpecURL) == "" {
		return ferrors.ValidationError("api.specUrl is required when api is configured").Build()
	}
	if err := validateAbsoluteURL(api.SpecURL); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid api.specUrl").
			WithContext("url", api.SpecURL).Fatal().Build()
	}
	if !strings.HasPrefix(api.Route, "/") {
		return ferrors.ValidationError(fmt.Sprintf("api.route %q must start with /", api.Route)).Build()
	}
	return nil
}

func (v *configurationValidator) validateNotify() error {
	r := v.config.Notify.Retry
	for field, raw := range map[string]string{
		"notify.retry.initialDelay": r.InitialDelay,
		"notify.retry.maxDelay":     r.MaxDelay,
	} {
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return ferrors.ValidationError(fmt.Sprintf("%s %q must be a positive duration", field, raw)).Build()
		}
	}
	if r.MaxRetries != nil && *r.MaxRetries < 0 {
		return ferrors.ValidationError("notify.retry.maxRetries cannot be negative").Build()
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
