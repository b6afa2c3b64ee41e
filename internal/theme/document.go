package theme

import (
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/themix/internal/colour"
)

// Document is the colors.yaml layout. Field order is the emitted key order.
type Document struct {
	Metadata MetadataSection `yaml:"metadata"`
	Text     TierSection     `yaml:"text"`
	Surface  SurfaceSection  `yaml:"surface"`
	Semantic SemanticSection `yaml:"semantic"`
	Accent   AccentSection   `yaml:"accent"`
	Border   BorderSection   `yaml:"border"`
	Terminal TerminalSection `yaml:"terminal"`
	Oomox    OomoxSection    `yaml:"oomox"`
	RGB      RGBSection      `yaml:"rgb"`
}

// MetadataSection describes where the palette came from.
type MetadataSection struct {
	Name      string `yaml:"name"`
	Wallpaper string `yaml:"wallpaper"`
	Generated string `yaml:"generated"`
	Generator string `yaml:"generator"`
}

// TierSection holds a five step ramp as hex and raw hex.
type TierSection struct {
	Primary       string `yaml:"primary"`
	PrimaryRGB    string `yaml:"primary_rgb"`
	Secondary     string `yaml:"secondary"`
	SecondaryRGB  string `yaml:"secondary_rgb"`
	Tertiary      string `yaml:"tertiary"`
	TertiaryRGB   string `yaml:"tertiary_rgb"`
	Quaternary    string `yaml:"quaternary"`
	QuaternaryRGB string `yaml:"quaternary_rgb"`
	Quinary       string `yaml:"quinary"`
	QuinaryRGB    string `yaml:"quinary_rgb"`
}

// SurfaceSection matches TierSection plus a translucent primary.
type SurfaceSection struct {
	Primary       string `yaml:"primary"`
	PrimaryRGB    string `yaml:"primary_rgb"`
	PrimaryRGBA   string `yaml:"primary_rgba"`
	Secondary     string `yaml:"secondary"`
	SecondaryRGB  string `yaml:"secondary_rgb"`
	Tertiary      string `yaml:"tertiary"`
	TertiaryRGB   string `yaml:"tertiary_rgb"`
	Quaternary    string `yaml:"quaternary"`
	QuaternaryRGB string `yaml:"quaternary_rgb"`
	Quinary       string `yaml:"quinary"`
	QuinaryRGB    string `yaml:"quinary_rgb"`
}

// SemanticSection holds the interaction state colours.
type SemanticSection struct {
	Active      string `yaml:"active"`
	ActiveRGB   string `yaml:"active_rgb"`
	ActiveFG    string `yaml:"active_fg"`
	ActiveFGRGB string `yaml:"active_fg_rgb"`
	Inactive    string `yaml:"inactive"`
	InactiveRGB string `yaml:"inactive_rgb"`
	Hover       string `yaml:"hover"`
	HoverRGB    string `yaml:"hover_rgb"`
	Focus       string `yaml:"focus"`
	FocusRGB    string `yaml:"focus_rgb"`
}

// AccentSection holds the four accent slots.
type AccentSection struct {
	Primary       string `yaml:"primary"`
	PrimaryRGB    string `yaml:"primary_rgb"`
	Secondary     string `yaml:"secondary"`
	SecondaryRGB  string `yaml:"secondary_rgb"`
	Tertiary      string `yaml:"tertiary"`
	TertiaryRGB   string `yaml:"tertiary_rgb"`
	Quaternary    string `yaml:"quaternary"`
	QuaternaryRGB string `yaml:"quaternary_rgb"`
}

// BorderSection holds the border roles.
type BorderSection struct {
	Primary    string `yaml:"primary"`
	PrimaryRGB string `yaml:"primary_rgb"`
	Subtle     string `yaml:"subtle"`
	SubtleRGB  string `yaml:"subtle_rgb"`
	Accent     string `yaml:"accent"`
	AccentRGB  string `yaml:"accent_rgb"`
}

// TerminalSection is encoded as color0..color15 in slot order.
type TerminalSection [16]string

// MarshalYAML implements yaml.Marshaler.
func (t TerminalSection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, hex := range t {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: colour.SlotName(i)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: hex},
		)
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TerminalSection) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	for i := range t {
		t[i] = m[colour.SlotName(i)]
	}
	return nil
}

// OomoxSection is the oomox colour scheme. Colours are raw hex without '#'.
type OomoxSection struct {
	Name             string     `yaml:"name"`
	BG               string     `yaml:"bg"`
	FG               string     `yaml:"fg"`
	MenuBG           string     `yaml:"menu_bg"`
	MenuFG           string     `yaml:"menu_fg"`
	SelBG            string     `yaml:"sel_bg"`
	SelFG            string     `yaml:"sel_fg"`
	TxtBG            string     `yaml:"txt_bg"`
	TxtFG            string     `yaml:"txt_fg"`
	BtnBG            string     `yaml:"btn_bg"`
	BtnFG            string     `yaml:"btn_fg"`
	HdrBtnBG         string     `yaml:"hdr_btn_bg"`
	HdrBtnFG         string     `yaml:"hdr_btn_fg"`
	WMBorderFocus    string     `yaml:"wm_border_focus"`
	WMBorderUnfocus  string     `yaml:"wm_border_unfocus"`
	IconsLightFolder string     `yaml:"icons_light_folder"`
	IconsMedium      string     `yaml:"icons_medium"`
	IconsDark        string     `yaml:"icons_dark"`
	Roundness        int        `yaml:"roundness"`
	Spacing          int        `yaml:"spacing"`
	Gradient         OneDecimal `yaml:"gradient"`
	GTK3GenerateDark string     `yaml:"gtk3_generate_dark"`
}

// OneDecimal is a float that always keeps one decimal place ("0.0").
type OneDecimal float64

// MarshalYAML implements yaml.Marshaler.
func (f OneDecimal) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: strconv.FormatFloat(float64(f), 'f', 1, 64),
	}, nil
}

// RGBSection holds channel triples for tools that read numbers.
type RGBSection struct {
	Background       Triple `yaml:"background"`
	Foreground       Triple `yaml:"foreground"`
	AccentPrimary    Triple `yaml:"accent_primary"`
	AccentSecondary  Triple `yaml:"accent_secondary"`
	AccentTertiary   Triple `yaml:"accent_tertiary"`
	AccentQuaternary Triple `yaml:"accent_quaternary"`
	Active           Triple `yaml:"active"`
	Hover            Triple `yaml:"hover"`
	Frame            Triple `yaml:"frame"`
	Urgent           Triple `yaml:"urgent"`
}

// Triple is an [r, g, b] list emitted in flow style.
type Triple []int

// MarshalYAML implements yaml.Marshaler.
func (t Triple) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range t {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return node, nil
}

// NewDocument lays out p for serialisation. alpha is used for the
// translucent surface colour.
func NewDocument(p *colour.Palette, alpha float64) *Document {
	generated := p.Metadata.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	s, t := p.Surface, p.Text
	o := p.Oomox

	var term TerminalSection
	for i, c := range p.Terminal {
		term[i] = c.Hex()
	}

	return &Document{
		Metadata: MetadataSection{
			Name:      p.Metadata.Name,
			Wallpaper: p.Metadata.Wallpaper,
			Generated: generated.Truncate(time.Second).Format(time.RFC3339),
			Generator: p.Metadata.Generator,
		},
		Text: tierSection(t),
		Surface: SurfaceSection{
			Primary:       s.Primary.Hex(),
			PrimaryRGB:    s.Primary.HexRaw(),
			PrimaryRGBA:   s.Primary.RGBA(alpha),
			Secondary:     s.Secondary.Hex(),
			SecondaryRGB:  s.Secondary.HexRaw(),
			Tertiary:      s.Tertiary.Hex(),
			TertiaryRGB:   s.Tertiary.HexRaw(),
			Quaternary:    s.Quaternary.Hex(),
			QuaternaryRGB: s.Quaternary.HexRaw(),
			Quinary:       s.Quinary.Hex(),
			QuinaryRGB:    s.Quinary.HexRaw(),
		},
		Semantic: SemanticSection{
			Active:      p.Semantic.Active.Hex(),
			ActiveRGB:   p.Semantic.Active.HexRaw(),
			ActiveFG:    p.Semantic.ActiveFG.Hex(),
			ActiveFGRGB: p.Semantic.ActiveFG.HexRaw(),
			Inactive:    p.Semantic.Inactive.Hex(),
			InactiveRGB: p.Semantic.Inactive.HexRaw(),
			Hover:       p.Semantic.Hover.Hex(),
			HoverRGB:    p.Semantic.Hover.HexRaw(),
			Focus:       p.Semantic.Focus.Hex(),
			FocusRGB:    p.Semantic.Focus.HexRaw(),
		},
		Accent: AccentSection{
			Primary:       p.Accent.Primary.Hex(),
			PrimaryRGB:    p.Accent.Primary.HexRaw(),
			Secondary:     p.Accent.Secondary.Hex(),
			SecondaryRGB:  p.Accent.Secondary.HexRaw(),
			Tertiary:      p.Accent.Tertiary.Hex(),
			TertiaryRGB:   p.Accent.Tertiary.HexRaw(),
			Quaternary:    p.Accent.Quaternary.Hex(),
			QuaternaryRGB: p.Accent.Quaternary.HexRaw(),
		},
		Border: BorderSection{
			Primary:    p.Border.Primary.Hex(),
			PrimaryRGB: p.Border.Primary.HexRaw(),
			Subtle:     p.Border.Subtle.Hex(),
			SubtleRGB:  p.Border.Subtle.HexRaw(),
			Accent:     p.Border.Accent.Hex(),
			AccentRGB:  p.Border.Accent.HexRaw(),
		},
		Terminal: term,
		Oomox: OomoxSection{
			Name:             o.Name,
			BG:               o.BG.HexRaw(),
			FG:               o.FG.HexRaw(),
			MenuBG:           o.MenuBG.HexRaw(),
			MenuFG:           o.MenuFG.HexRaw(),
			SelBG:            o.SelBG.HexRaw(),
			SelFG:            o.SelFG.HexRaw(),
			TxtBG:            o.TxtBG.HexRaw(),
			TxtFG:            o.TxtFG.HexRaw(),
			BtnBG:            o.BtnBG.HexRaw(),
			BtnFG:            o.BtnFG.HexRaw(),
			HdrBtnBG:         o.HdrBtnBG.HexRaw(),
			HdrBtnFG:         o.HdrBtnFG.HexRaw(),
			WMBorderFocus:    o.WMBorderFocus.HexRaw(),
			WMBorderUnfocus:  o.WMBorderUnfocus.HexRaw(),
			IconsLightFolder: o.IconsLight.HexRaw(),
			IconsMedium:      o.IconsMedium.HexRaw(),
			IconsDark:        o.IconsDark.HexRaw(),
			Roundness:        o.Roundness,
			Spacing:          o.Spacing,
			Gradient:         OneDecimal(o.Gradient),
			GTK3GenerateDark: titleBool(o.GTK3GenerateDark),
		},
		RGB: RGBSection{
			Background:       p.RGB.Background.Triple(),
			Foreground:       p.RGB.Foreground.Triple(),
			AccentPrimary:    p.RGB.AccentPrimary.Triple(),
			AccentSecondary:  p.RGB.AccentSecondary.Triple(),
			AccentTertiary:   p.RGB.AccentTertiary.Triple(),
			AccentQuaternary: p.RGB.AccentQuaternary.Triple(),
			Active:           p.RGB.Active.Triple(),
			Hover:            p.RGB.Hover.Triple(),
			Frame:            p.RGB.Frame.Triple(),
			Urgent:           p.RGB.Urgent.Triple(),
		},
	}
}

func tierSection(t colour.Tiers) TierSection {
	return TierSection{
		Primary:       t.Primary.Hex(),
		PrimaryRGB:    t.Primary.HexRaw(),
		Secondary:     t.Secondary.Hex(),
		SecondaryRGB:  t.Secondary.HexRaw(),
		Tertiary:      t.Tertiary.Hex(),
		TertiaryRGB:   t.Tertiary.HexRaw(),
		Quaternary:    t.Quaternary.Hex(),
		QuaternaryRGB: t.Quaternary.HexRaw(),
		Quinary:       t.Quinary.Hex(),
		QuinaryRGB:    t.Quinary.HexRaw(),
	}
}

// titleBool renders the capitalised booleans oomox expects.
func titleBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
