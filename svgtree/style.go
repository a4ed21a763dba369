package svgtree

import "fmt"

// Property is one of the style properties resolved by the cascade.
type Property uint8

const (
	Color Property = iota
	Display
	Fill
	FillOpacity
	FillRule
	Stroke
	StrokeWidth
	StrokeLinecap
	StrokeLinejoin
	StrokeMiterlimit
	StrokeOpacity
	StrokeDasharray
	StrokeDashoffset
	Visibility
	FontSize
	FontFamily
	TextAnchor
	Opacity
	StopColor
	StopOpacity

	NumProperties // number of properties
)

var propertyNames = [NumProperties]string{
	Color:            "color",
	Display:          "display",
	Fill:             "fill",
	FillOpacity:      "fill-opacity",
	FillRule:         "fill-rule",
	Stroke:           "stroke",
	StrokeWidth:      "stroke-width",
	StrokeLinecap:    "stroke-linecap",
	StrokeLinejoin:   "stroke-linejoin",
	StrokeMiterlimit: "stroke-miterlimit",
	StrokeOpacity:    "stroke-opacity",
	StrokeDasharray:  "stroke-dasharray",
	StrokeDashoffset: "stroke-dashoffset",
	Visibility:       "visibility",
	FontSize:         "font-size",
	FontFamily:       "font-family",
	TextAnchor:       "text-anchor",
	Opacity:          "opacity",
	StopColor:        "stop-color",
	StopOpacity:      "stop-opacity",
}

var propertiesByName = func() map[string]Property {
	out := make(map[string]Property, NumProperties)
	for p, name := range propertyNames {
		out[name] = Property(p)
	}
	return out
}()

func (p Property) String() string {
	if p < NumProperties {
		return propertyNames[p]
	}
	return fmt.Sprintf("<unknown Property %d>", p)
}

// Inherited returns true if the property takes the value of
// the parent element when not specified.
// opacity, stop-color and stop-opacity are not inherited.
func (p Property) Inherited() bool {
	switch p {
	case Opacity, StopColor, StopOpacity:
		return false
	}
	return true
}

// PropertyByName returns false for unsupported properties.
func PropertyByName(name string) (Property, bool) {
	p, ok := propertiesByName[name]
	return p, ok
}

// Value is the raw text of a property value.
type Value struct {
	Raw       string
	Important bool
}

// ComputedStyle is the resolved value of every property,
// indexed by Property.
type ComputedStyle [NumProperties]Value

// Get returns the raw value of `p`.
func (cs *ComputedStyle) Get(p Property) string { return cs[p].Raw }

// Defaults is the implicit parent of the root element.
var Defaults = ComputedStyle{
	Color:            {Raw: "black"},
	Display:          {Raw: "inline"},
	Fill:             {Raw: "black"},
	FillOpacity:      {Raw: "1"},
	FillRule:         {Raw: "nonzero"},
	Stroke:           {Raw: "none"},
	StrokeWidth:      {Raw: "1"},
	StrokeLinecap:    {Raw: "butt"},
	StrokeLinejoin:   {Raw: "miter"},
	StrokeMiterlimit: {Raw: "4"},
	StrokeOpacity:    {Raw: "1"},
	StrokeDasharray:  {Raw: "none"},
	StrokeDashoffset: {Raw: "0"},
	Visibility:       {Raw: "visible"},
	FontSize:         {Raw: "12"},
	FontFamily:       {Raw: "serif"},
	TextAnchor:       {Raw: "start"},
	Opacity:          {Raw: "1"},
	StopColor:        {Raw: "black"},
	StopOpacity:      {Raw: "1"},
}
