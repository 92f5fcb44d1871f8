package export

// A4 portrait page size in points
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Placement is where the captured image sits on the page, in points.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FitA4 scales an image of w×h pixels to fit an A4 page. Images wider than the
// page ratio take the full width; others take the full height. The image is
// centered horizontally and starts at the top of the page.
func FitA4(w, h float64) Placement {
	if w <= 0 || h <= 0 {
		return Placement{}
	}

	ratio := w / h
	var p Placement
	if ratio > A4Width/A4Height {
		p.Width = A4Width
		p.Height = A4Width / ratio
	} else {
		p.Height = A4Height
		p.Width = A4Height * ratio
	}
	p.X = (A4Width - p.Width) / 2
	return p
}
