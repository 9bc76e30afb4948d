package domain

import (
	"encoding/json"
	"strings"
)

// RequestedColor is a variant name as supplied by a caller. The storefront
// sends the full trilingual record, removal requests carry a single display
// string extracted from a composite line key, so the JSON shape is either a
// bare string or an {en,fr,ar} object.
type RequestedColor struct {
	Single string
	Name   *ColorName
}

func SingleColor(name string) RequestedColor {
	return RequestedColor{Single: name}
}

func (n ColorName) Requested() RequestedColor {
	name := n
	return RequestedColor{Name: &name}
}

func (r *RequestedColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RequestedColor{Single: s}
		return nil
	}
	var name ColorName
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*r = RequestedColor{Name: &name}
	return nil
}

func (r RequestedColor) MarshalJSON() ([]byte, error) {
	if r.Name != nil {
		return json.Marshal(*r.Name)
	}
	return json.Marshal(r.Single)
}

// IsMultilingual reports whether the caller supplied a full trilingual record.
func (r RequestedColor) IsMultilingual() bool {
	return r.Name != nil && r.Name.EN != "" && r.Name.FR != "" && r.Name.AR != ""
}

// Renderings returns the non-empty name renderings carried by the request.
func (r RequestedColor) Renderings() []string {
	if r.Name != nil {
		var out []string
		for _, v := range []string{r.Name.EN, r.Name.FR, r.Name.AR} {
			if strings.TrimSpace(v) != "" {
				out = append(out, v)
			}
		}
		return out
	}
	if strings.TrimSpace(r.Single) == "" {
		return nil
	}
	return []string{r.Single}
}

func normalizeColor(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether any rendering of the catalog name equals any
// rendering of the request after trimming and lowercasing. Comparison is
// exact; there is no fuzzy matching across languages.
func (n ColorName) Matches(req RequestedColor) bool {
	for _, want := range req.Renderings() {
		w := normalizeColor(want)
		if w == "" {
			continue
		}
		if normalizeColor(n.EN) == w || normalizeColor(n.FR) == w || normalizeColor(n.AR) == w {
			return true
		}
	}
	return false
}

// FindColor resolves a requested variant name to an index into p.Colors.
// The second return is false when no variant matches.
func (p Product) FindColor(req RequestedColor) (int, bool) {
	for i, c := range p.Colors {
		if c.ColorName.Matches(req) {
			return i, true
		}
	}
	return 0, false
}
