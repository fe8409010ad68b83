package domain

import (
	"fmt"
	"strings"
)

// Placeholders recognised inside a landscape URL template.
const (
	ProviderPlaceholder = "{provider}"
	ConsumerPlaceholder = "{consumer}"
)

// UnknownValue is used for catalog fields missing from the source document.
const UnknownValue = "<unknown>"

// DefaultURLTemplate is used for landscapes that do not declare a URL.
const DefaultURLTemplate = "https://{provider}-{tenant}.<data-center>.hana.ondemand.com"

// CustomLandscapeName is the display name of the free-text URL choice.
const CustomLandscapeName = "Custom"

// Landscape is a named deployment environment with a URL template.
type Landscape struct {
	// Name is the display name (e.g., "Europe").
	Name string `json:"name"`

	// URLTemplate is the service base URL. It may contain {provider} and {consumer}.
	URLTemplate string `json:"url"`

	// Providers are the tenants hosted on this landscape, in catalog order.
	Providers []Provider `json:"providers"`
}

// DisplayName returns the label shown for the landscape.
func (l Landscape) DisplayName() string {
	return l.Name
}

// FindProvider returns the provider whose alias or name equals key.
func (l Landscape) FindProvider(key string) (Provider, bool) {
	for _, p := range l.Providers {
		if p.Alias == key || p.Name == key {
			return p, true
		}
	}
	return Provider{}, false
}

// Provider is a provider account within a landscape.
type Provider struct {
	Name      string     `json:"name"`
	Alias     string     `json:"alias"`
	Consumers []Consumer `json:"consumers"`
}

// DisplayName returns "name (alias)".
func (p Provider) DisplayName() string {
	return p.Name + " (" + p.Alias + ")"
}

// Identifier is the value substituted for {provider}.
func (p Provider) Identifier() string {
	return p.Alias
}

// FindConsumer returns the consumer whose account or name equals key.
func (p Provider) FindConsumer(key string) (Consumer, bool) {
	for _, c := range p.Consumers {
		if c.Account == key || c.Name == key {
			return c, true
		}
	}
	return Consumer{}, false
}

// Consumer is a consumer account subscribed to a provider.
type Consumer struct {
	Name    string `json:"name"`
	Account string `json:"account"`
}

// DisplayName returns "name (account)".
func (c Consumer) DisplayName() string {
	return c.Name + " (" + c.Account + ")"
}

// Identifier is the value substituted for {consumer}.
func (c Consumer) Identifier() string {
	return c.Account
}

// Catalog is the ordered, read-only set of known landscapes.
// It is built once by a CatalogLoader and never modified afterwards;
// accessors hand out copies so callers cannot mutate the shared value.
type Catalog struct {
	landscapes []Landscape
}

// NewCatalog builds a catalog from the given landscapes.
// The input is deep-copied.
func NewCatalog(landscapes []Landscape) *Catalog {
	return &Catalog{landscapes: copyLandscapes(landscapes)}
}

// Len returns the number of predefined landscapes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.landscapes)
}

// Landscapes returns a copy of all predefined landscapes.
func (c *Catalog) Landscapes() []Landscape {
	if c == nil {
		return nil
	}
	return copyLandscapes(c.landscapes)
}

// Landscape returns the predefined landscape at index i.
func (c *Catalog) Landscape(i int) (Landscape, bool) {
	if c == nil || i < 0 || i >= len(c.landscapes) {
		return Landscape{}, false
	}
	return copyLandscapes(c.landscapes[i : i+1])[0], true
}

// IndexOf returns the index of the landscape with the given name, or -1.
func (c *Catalog) IndexOf(name string) int {
	if c == nil {
		return -1
	}
	for i, l := range c.landscapes {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer.
func (c *Catalog) String() string {
	if c == nil || len(c.landscapes) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(c.landscapes))
	for _, l := range c.landscapes {
		parts = append(parts, fmt.Sprintf("%s (%d providers)", l.DisplayName(), len(l.Providers)))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func copyLandscapes(in []Landscape) []Landscape {
	if in == nil {
		return nil
	}
	out := make([]Landscape, len(in))
	for i, l := range in {
		out[i] = Landscape{Name: l.Name, URLTemplate: l.URLTemplate}
		if l.Providers != nil {
			out[i].Providers = make([]Provider, len(l.Providers))
			for j, p := range l.Providers {
				out[i].Providers[j] = Provider{Name: p.Name, Alias: p.Alias}
				if p.Consumers != nil {
					out[i].Providers[j].Consumers = append([]Consumer(nil), p.Consumers...)
				}
			}
		}
	}
	return out
}

// LandscapeSelection is the user's landscape choice: either a predefined
// catalog landscape or the Custom free-text URL.
type LandscapeSelection struct {
	custom bool
	index  int
	raw    string
}

// PredefinedLandscape selects catalog landscape i (zero-based).
func PredefinedLandscape(i int) LandscapeSelection {
	return LandscapeSelection{index: i}
}

// CustomLandscape selects free-text URL entry with the given raw text.
func CustomLandscape(rawURL string) LandscapeSelection {
	return LandscapeSelection{custom: true, raw: rawURL}
}

// IsCustom reports whether the selection is the Custom choice.
func (s LandscapeSelection) IsCustom() bool {
	return s.custom
}

// Index returns the catalog index of a predefined selection.
func (s LandscapeSelection) Index() int {
	return s.index
}

// RawURL returns the user-entered text of a Custom selection.
func (s LandscapeSelection) RawURL() string {
	return s.raw
}

func (s LandscapeSelection) String() string {
	if s.custom {
		return CustomLandscapeName + "(" + s.raw + ")"
	}
	return fmt.Sprintf("Predefined(%d)", s.index)
}
