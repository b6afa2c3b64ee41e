package colour

// Fixed oomox scheme settings.
const (
	OomoxRoundness = 4
	OomoxSpacing   = 3
	OomoxGradient  = 0.0
)

// Oomox is the flat colour scheme consumed by the oomox/themix GTK theme
// generator.
type Oomox struct {
	Name             string
	BG               RGB
	FG               RGB
	MenuBG           RGB
	MenuFG           RGB
	SelBG            RGB
	SelFG            RGB
	TxtBG            RGB
	TxtFG            RGB
	BtnBG            RGB
	BtnFG            RGB
	HdrBtnBG         RGB
	HdrBtnFG         RGB
	WMBorderFocus    RGB
	WMBorderUnfocus  RGB
	IconsLight       RGB
	IconsMedium      RGB
	IconsDark        RGB
	Roundness        int
	Spacing          int
	Gradient         float64
	GTK3GenerateDark bool
}

// GenerateOomoxColours reshapes the derived tiers and accents into an oomox
// scheme. accents must hold at least one colour.
func GenerateOomoxColours(surfaces, texts Tiers, accents []RGB, name string) Oomox {
	primary := accents[0]
	secondary := primary
	if len(accents) > 1 {
		secondary = accents[1]
	}

	return Oomox{
		Name:             name,
		BG:               surfaces.Primary,
		FG:               texts.Primary,
		MenuBG:           surfaces.Primary,
		MenuFG:           texts.Primary,
		SelBG:            primary,
		SelFG:            surfaces.Primary,
		TxtBG:            surfaces.Primary,
		TxtFG:            texts.Primary,
		BtnBG:            secondary,
		BtnFG:            primary,
		HdrBtnBG:         surfaces.Secondary,
		HdrBtnFG:         texts.Primary,
		WMBorderFocus:    secondary,
		WMBorderUnfocus:  surfaces.Secondary,
		IconsLight:       primary,
		IconsMedium:      texts.Primary,
		IconsDark:        surfaces.Primary,
		Roundness:        OomoxRoundness,
		Spacing:          OomoxSpacing,
		Gradient:         OomoxGradient,
		GTK3GenerateDark: true,
	}
}
