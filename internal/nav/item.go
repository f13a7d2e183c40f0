// Package nav assembles the flat navigation lists shown in the page header
// and footer.
package nav

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Position is a navbar placement hint.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// ErrInvalidItem indicates a navigation item failed validation.
var ErrInvalidItem = errors.New("invalid navigation item")

// Item is a navbar entry or footer link. Exactly one of To, Href or DocID
// must be set: To is a site-internal path, Href an external URL and DocID a
// content id resolved against the catalog by the caller.
type Item struct {
	Label    string   `yaml:"label" toml:"label" validate:"required"`
	To       string   `yaml:"to,omitempty" toml:"to"`
	Href     string   `yaml:"href,omitempty" toml:"href"`
	DocID    string   `yaml:"docId,omitempty" toml:"docId"`
	Target   string   `yaml:"target,omitempty" toml:"target"`
	Position Position `yaml:"position,omitempty" toml:"position" validate:"omitempty,oneof=left right"`
}

// TargetKind classifies where an item points.
type TargetKind string

const (
	TargetDoc      TargetKind = "doc"
	TargetInternal TargetKind = "internal"
	TargetExternal TargetKind = "external"
)

// Kind reports which target field is set. Whitespace-only fields count as
// unset, matching Validate.
func (i Item) Kind() TargetKind {
	switch {
	case strings.TrimSpace(i.DocID) != "":
		return TargetDoc
	case strings.TrimSpace(i.Href) != "":
		return TargetExternal
	default:
		return TargetInternal
	}
}

// Destination returns the item's single target value.
func (i Item) Destination() string {
	switch i.Kind() {
	case TargetDoc:
		return strings.TrimSpace(i.DocID)
	case TargetExternal:
		return strings.TrimSpace(i.Href)
	default:
		return strings.TrimSpace(i.To)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		item := sl.Current().Interface().(Item)
		set := 0
		for _, s := range []string{item.To, item.Href, item.DocID} {
			if strings.TrimSpace(s) != "" {
				set++
			}
		}
		if set != 1 {
			sl.ReportError(item.To, "to", "To", "one_target", "")
		}
	}, Item{})
	return v
}

// Validate checks a single item.
func (i Item) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("%w %q: %s", ErrInvalidItem, i.Label, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, e.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param()))
		case "one_target":
			msgs = append(msgs, "exactly one of to, href or docId must be set")
		default:
			msgs = append(msgs, e.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
