package domain

// Template is a named set of styling parameters for a public page
type Template struct {
	Name            string         `json:"name" validate:"required"`
	TemplateEngName string         `json:"templateEngName" validate:"required"`
	BgImage         string         `json:"bgImage"`
	FontFamily      string         `json:"fontFamily"`
	Color           TemplateColor  `json:"color"`
	Border          TemplateBorder `json:"border"`
}

type TemplateColor struct {
	FontPrimary     string `json:"fontPrimary"`
	FontSecondary   string `json:"fontSecondary"`
	ButtonPrimary   string `json:"buttonPrimary"`
	ButtonSecondary string `json:"buttonSecondary"`
}

type TemplateBorder struct {
	Style  string `json:"style" validate:"oneof=solid dashed none"`
	Radius int    `json:"radius" validate:"gte=0"`
}

// DefaultTemplateKey is used when a profile names no template
const DefaultTemplateKey = "default"

// FallbackTemplate is rendered when a profile's template cannot be found.
var FallbackTemplate = Template{
	Name:            "Default",
	TemplateEngName: DefaultTemplateKey,
	FontFamily:      "Inter, sans-serif",
	Color: TemplateColor{
		FontPrimary:     "#111827",
		FontSecondary:   "#6B7280",
		ButtonPrimary:   "#3B82F6",
		ButtonSecondary: "#60A5FA",
	},
	Border: TemplateBorder{Style: "solid", Radius: 8},
}

// BuiltinTemplates are written to the store by the seed command
var BuiltinTemplates = []Template{
	{
		Name:            "Default",
		TemplateEngName: "default",
		BgImage:         "/templates/black_01.jpg",
		FontFamily:      "Arial, sans-serif",
		Color:           TemplateColor{FontPrimary: "#1F2937", FontSecondary: "#6B7280", ButtonPrimary: "#3B82F6", ButtonSecondary: "#9CA3AF"},
		Border:          TemplateBorder{Style: "solid", Radius: 8},
	},
	{
		Name:            "Neon",
		TemplateEngName: "neon",
		BgImage:         "/templates/gradient_01.jpg",
		FontFamily:      `"Orbitron", sans-serif`,
		Color:           TemplateColor{FontPrimary: "#FAFAFA", FontSecondary: "#E5E5E5", ButtonPrimary: "#D946EF", ButtonSecondary: "#7C3AED"},
		Border:          TemplateBorder{Style: "dashed", Radius: 16},
	},
	{
		Name:            "Pastel",
		TemplateEngName: "pastel",
		BgImage:         "/images/pastel-bg.jpg",
		FontFamily:      `"Comic Sans MS", cursive`,
		Color:           TemplateColor{FontPrimary: "#374151", FontSecondary: "#6B7280", ButtonPrimary: "#F9A8D4", ButtonSecondary: "#FCD34D"},
		Border:          TemplateBorder{Style: "solid", Radius: 12},
	},
	{
		Name:            "Minimal",
		TemplateEngName: "minimal",
		BgImage:         "/templates/gradient_01.jpg",
		FontFamily:      "Poppins",
		Color:           TemplateColor{FontPrimary: "#111827", FontSecondary: "#6b7280", ButtonPrimary: "#2563eb", ButtonSecondary: "#e0e7ff"},
		Border:          TemplateBorder{Style: "solid", Radius: 12},
	},
	{
		Name:            "Black",
		TemplateEngName: "black",
		BgImage:         "/templates/black_01.jpg",
		FontFamily:      "Montserrat",
		Color:           TemplateColor{FontPrimary: "#ffffff", FontSecondary: "#333333", ButtonPrimary: "#030303", ButtonSecondary: "#666666"},
		Border:          TemplateBorder{Style: "dashed", Radius: 20},
	},
}
