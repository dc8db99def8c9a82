package page

// Attr is a single HTML attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Element collects root element attributes in insertion order. It
// satisfies locale.AttributeSetter.
type Element struct {
	attrs []Attr
}

// SetAttribute adds name or replaces its value in place.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attribute returns the value of name.
func (e *Element) Attribute(name string) (string, bool) {
	for _, attr := range e.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the attributes.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}
