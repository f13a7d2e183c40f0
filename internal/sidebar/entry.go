package sidebar

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry types accepted in the declarative form.
const (
	TypeDoc      = "doc"
	TypeCategory = "category"
	TypeLink     = "link"

	LinkTypeGeneratedIndex = "generated-index"
	LinkTypeDoc            = "doc"
)

// Entry is one element of a declarative sidebar as written in configuration.
//
// In YAML an entry is either a bare content id string or a mapping. Mappings
// use "type" to select the variant; `{category: Label, items: [...]}` and the
// single-key `{Label: [...]}` forms are accepted as category shorthands.
type Entry struct {
	Type        string     `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	ID          string     `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Label       string     `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty"`
	Href        string     `yaml:"href,omitempty" toml:"href,omitempty" json:"href,omitempty"`
	Link        *EntryLink `yaml:"link,omitempty" toml:"link,omitempty" json:"link,omitempty"`
	Items       []Entry    `yaml:"items,omitempty" toml:"items,omitempty" json:"items,omitempty"`
	Collapsed   *bool      `yaml:"collapsed,omitempty" toml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Collapsible *bool      `yaml:"collapsible,omitempty" toml:"collapsible,omitempty" json:"collapsible,omitempty"`
}

// EntryLink is the declarative form of a category link.
type EntryLink struct {
	Type        string `yaml:"type" toml:"type" json:"type"`
	ID          string `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Title       string `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Slug        string `yaml:"slug,omitempty" toml:"slug,omitempty" json:"slug,omitempty"`
}

// DocEntry returns the bare string form of a doc entry.
func DocEntry(id string) Entry {
	return Entry{ID: id}
}

// CategoryEntry returns a category entry without a link.
func CategoryEntry(label string, items ...Entry) Entry {
	return Entry{Type: TypeCategory, Label: label, Items: items}
}

// isShorthandDoc reports whether e round-trips as a bare string.
func (e Entry) isShorthandDoc() bool {
	return (e.Type == "" || e.Type == TypeDoc) && e.Label == "" && e.Href == "" &&
		e.Link == nil && len(e.Items) == 0 && e.Collapsed == nil && e.Collapsible == nil
}

type entryFields struct {
	Type        string     `yaml:"type,omitempty"`
	ID          string     `yaml:"id,omitempty"`
	Category    string     `yaml:"category,omitempty"`
	Label       string     `yaml:"label,omitempty"`
	Href        string     `yaml:"href,omitempty"`
	Link        *EntryLink `yaml:"link,omitempty"`
	Items       []Entry    `yaml:"items,omitempty"`
	Collapsed   *bool      `yaml:"collapsed,omitempty"`
	Collapsible *bool      `yaml:"collapsible,omitempty"`
}

var knownKeys = map[string]struct{}{
	"type": {}, "id": {}, "category": {}, "label": {}, "href": {},
	"link": {}, "items": {}, "collapsed": {}, "collapsible": {},
}

var knownLinkKeys = map[string]struct{}{
	"type": {}, "id": {}, "title": {}, "description": {}, "slug": {},
}

// checkYAMLKeys rejects mapping keys outside known. Nested decoding does not
// inherit the decoder's KnownFields setting, so entries check themselves.
func checkYAMLKeys(value *yaml.Node, known map[string]struct{}, what string) error {
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if _, ok := known[key.Value]; !ok {
			return fmt.Errorf("line %d: unknown %s key %q: %w", key.Line, what, key.Value, ErrInvalidReference)
		}
	}
	return nil
}

func checkMapKeys(m map[string]any, known map[string]struct{}, what string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("unknown %s key %q: %w", what, k, ErrInvalidReference)
		}
	}
	return nil
}

// UnmarshalYAML rejects unknown link keys.
func (l *EntryLink) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: category link must be a mapping: %w", value.Line, ErrInvalidReference)
	}
	if err := checkYAMLKeys(value, knownLinkKeys, "category link"); err != nil {
		return err
	}
	type plain EntryLink
	return value.Decode((*plain)(l))
}

// UnmarshalYAML accepts the string and mapping forms of an entry.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*e = Entry{}
			return nil
		}
		*e = Entry{ID: value.Value}
		return nil
	case yaml.MappingNode:
		if len(value.Content) == 2 {
			key, val := value.Content[0], value.Content[1]
			if _, known := knownKeys[key.Value]; !known && val.Kind == yaml.SequenceNode {
				var items []Entry
				if err := val.Decode(&items); err != nil {
					return err
				}
				*e = Entry{Type: TypeCategory, Label: key.Value, Items: items}
				return nil
			}
		}
		if err := checkYAMLKeys(value, knownKeys, "sidebar entry"); err != nil {
			return err
		}
		var f entryFields
		if err := value.Decode(&f); err != nil {
			return err
		}
		*e = f.entry()
		return nil
	default:
		return fmt.Errorf("line %d: sidebar entry must be a string or a mapping", value.Line)
	}
}

// MarshalYAML writes shorthand docs as bare strings.
func (e Entry) MarshalYAML() (any, error) {
	if e.isShorthandDoc() {
		return e.ID, nil
	}
	return entryFields{
		Type:        e.Type,
		ID:          e.ID,
		Label:       e.Label,
		Href:        e.Href,
		Link:        e.Link,
		Items:       e.Items,
		Collapsed:   e.Collapsed,
		Collapsible: e.Collapsible,
	}, nil
}

func (f entryFields) entry() Entry {
	e := Entry{
		Type:        f.Type,
		ID:          f.ID,
		Label:       f.Label,
		Href:        f.Href,
		Link:        f.Link,
		Items:       f.Items,
		Collapsed:   f.Collapsed,
		Collapsible: f.Collapsible,
	}
	if f.Category != "" && (e.Type == "" || e.Type == TypeCategory) {
		e.Type = TypeCategory
		if e.Label == "" {
			e.Label = f.Category
		}
	}
	return e
}

// UnmarshalTOML accepts the string and table forms of an entry.
func (e *Entry) UnmarshalTOML(data any) error {
	decoded, err := entryFromAny(data)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func entryFromAny(data any) (Entry, error) {
	switch v := data.(type) {
	case string:
		return Entry{ID: v}, nil
	case map[string]any:
		return entryFromMap(v)
	default:
		return Entry{}, fmt.Errorf("sidebar entry must be a string or a table, got %T", data)
	}
}

func entryFromMap(m map[string]any) (Entry, error) {
	if len(m) == 1 {
		for k, v := range m {
			if _, known := knownKeys[k]; !known {
				if list, ok := v.([]any); ok {
					items, err := entriesFromList(list)
					if err != nil {
						return Entry{}, err
					}
					return Entry{Type: TypeCategory, Label: k, Items: items}, nil
				}
			}
		}
	}
	if err := checkMapKeys(m, knownKeys, "sidebar entry"); err != nil {
		return Entry{}, err
	}
	var f entryFields
	var err error
	if f.Type, err = stringField(m, "type"); err != nil {
		return Entry{}, err
	}
	if f.ID, err = stringField(m, "id"); err != nil {
		return Entry{}, err
	}
	if f.Category, err = stringField(m, "category"); err != nil {
		return Entry{}, err
	}
	if f.Label, err = stringField(m, "label"); err != nil {
		return Entry{}, err
	}
	if f.Href, err = stringField(m, "href"); err != nil {
		return Entry{}, err
	}
	if f.Collapsed, err = boolField(m, "collapsed"); err != nil {
		return Entry{}, err
	}
	if f.Collapsible, err = boolField(m, "collapsible"); err != nil {
		return Entry{}, err
	}
	if raw, ok := m["items"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return Entry{}, fmt.Errorf("items must be an array, got %T", raw)
		}
		if f.Items, err = entriesFromList(list); err != nil {
			return Entry{}, err
		}
	}
	if raw, ok := m["link"]; ok {
		lm, ok := raw.(map[string]any)
		if !ok {
			return Entry{}, fmt.Errorf("link must be a table, got %T", raw)
		}
		if err := checkMapKeys(lm, knownLinkKeys, "category link"); err != nil {
			return Entry{}, err
		}
		link := &EntryLink{}
		for key, dst := range map[string]*string{
			"type": &link.Type, "id": &link.ID, "title": &link.Title,
			"description": &link.Description, "slug": &link.Slug,
		} {
			if *dst, err = stringField(lm, key); err != nil {
				return Entry{}, err
			}
		}
		f.Link = link
	}
	return f.entry(), nil
}

func entriesFromList(list []any) ([]Entry, error) {
	items := make([]Entry, 0, len(list))
	for _, raw := range list {
		item, err := entryFromAny(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, raw)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (*bool, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean, got %T", key, raw)
	}
	return &b, nil
}

// ToEntries converts a validated tree back into its declarative form.
// Building the result again yields an identical tree.
func ToEntries(nodes []Node) []Entry {
	if nodes == nil {
		return nil
	}
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toEntry(n))
	}
	return out
}

func toEntry(n Node) Entry {
	switch n.Kind {
	case KindDoc:
		if n.Label == "" {
			return DocEntry(n.ContentID)
		}
		return Entry{Type: TypeDoc, ID: n.ContentID, Label: n.Label}
	case KindLink:
		return Entry{Type: TypeLink, Label: n.Label, Href: n.Href}
	default:
		e := Entry{
			Type:        TypeCategory,
			Label:       n.Label,
			Items:       ToEntries(n.Items),
			Collapsed:   n.Collapsed,
			Collapsible: n.Collapsible,
		}
		if n.Link != nil {
			switch n.Link.Kind {
			case LinkDoc:
				e.Link = &EntryLink{Type: LinkTypeDoc, ID: n.Link.ContentID}
			case LinkGeneratedIndex:
				e.Link = &EntryLink{
					Type:        LinkTypeGeneratedIndex,
					Title:       n.Link.Title,
					Description: n.Link.Description,
					Slug:        n.Link.Slug,
				}
			}
		}
		return e
	}
}
