package controls

// Palette is the binary theme mapping applied to the screen body and the
// control panel. Colors are "#rrggbb" strings.
type Palette struct {
	Background      string
	Text            string
	PanelBackground string
	PanelText       string
	Dim             string
	Accent          string
}

var (
	darkPalette = Palette{
		Background:      "#000000",
		Text:            "#ffffff",
		PanelBackground: "#121212",
		PanelText:       "#ffffff",
		Dim:             "#6c6c6c",
		Accent:          "#9d4edd",
	}
	lightPalette = Palette{
		Background:      "#ffffff",
		Text:            "#000000",
		PanelBackground: "#ededed",
		PanelText:       "#000000",
		Dim:             "#8a8a8a",
		Accent:          "#7b2cbf",
	}
)

// PaletteFor returns the dark or light palette.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}
