package locale

// AttributeSetter is anything that accepts HTML attributes, typically the
// root element of a rendered document.
type AttributeSetter interface {
	SetAttribute(name, value string)
}

// PageAttributes are the lang and dir values for a document root.
type PageAttributes struct {
	Lang string
	Dir  Direction
}

// Attributes derives page attributes from p. A nil provider yields the
// attributes of DefaultTag.
func Attributes(p Provider) PageAttributes {
	if p == nil {
		p = StaticTag(DefaultTag)
	}
	return PageAttributes{
		Lang: p.CurrentLocale().String(),
		Dir:  p.Direction(),
	}
}

// Apply sets lang, then dir, on el.
func (a PageAttributes) Apply(el AttributeSetter) {
	if el == nil {
		return
	}
	el.SetAttribute("lang", a.Lang)
	el.SetAttribute("dir", string(a.Dir))
}

// ApplyPageLocale is shorthand for Attributes(p).Apply(el).
func ApplyPageLocale(el AttributeSetter, p Provider) {
	Attributes(p).Apply(el)
}
