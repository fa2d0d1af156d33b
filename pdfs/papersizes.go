package pdfs

const (
	OrientationPortrait  = "P"
	OrientationLandscape = "L"
)

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

// LetterSize - the only page the invoice template targets. 8.5" x 11"
var LetterSize = PaperSize{Name: "Letter", Width: 612, Height: 792}
