package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

// object is a JSON object whose members are decoded on demand.
type object map[string]json.RawMessage

// Parse decodes a catalog document.
// The top level must be an array. Entries that are not objects are skipped,
// and missing names, aliases and accounts become domain.UnknownValue.
func Parse(data []byte) ([]domain.Landscape, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unexpected catalog document: %w", err)
	}
	if entries == nil {
		return nil, errors.New("unexpected catalog document: not an array")
	}

	landscapes := make([]domain.Landscape, 0, len(entries))
	for _, obj := range objects(entries) {
		landscape := domain.Landscape{
			Name:        obj.str("name", domain.UnknownValue),
			URLTemplate: obj.str("url", domain.DefaultURLTemplate),
		}
		for _, p := range objects(obj.list("providers")) {
			provider := domain.Provider{
				Name:  p.str("name", domain.UnknownValue),
				Alias: p.str("alias", domain.UnknownValue),
			}
			for _, c := range objects(p.list("consumers")) {
				provider.Consumers = append(provider.Consumers, domain.Consumer{
					Name:    c.str("name", domain.UnknownValue),
					Account: c.str("account", domain.UnknownValue),
				})
			}
			landscape.Providers = append(landscape.Providers, provider)
		}
		landscapes = append(landscapes, landscape)
	}
	return landscapes, nil
}

// objects decodes the entries that are JSON objects and drops the rest.
func objects(entries []json.RawMessage) []object {
	out := make([]object, 0, len(entries))
	for _, raw := range entries {
		var obj object
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// list returns the array member key, or nil if it is absent or not an array.
func (o object) list(key string) []json.RawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(o[key], &entries); err != nil {
		return nil
	}
	return entries
}

// str returns member key as text. Strings are unquoted, other scalars keep
// their JSON spelling, and absent or null members yield def.
func (o object) str(key, def string) string {
	raw, ok := o[key]
	if !ok {
		return def
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
