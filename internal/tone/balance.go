package tone

import "github.com/AnyUserName/phoenyx/internal/pixbuf"

// Temperature shifts white balance. Positive values warm the image (red
// +30f, green +10f, blue -20f with f = t/100); negative values cool it
// (red +20f, green +5f, blue -30f).
func Temperature(buf *pixbuf.Buffer, t float64) error {
	ok, err := prepare("temperature", buf)
	if !ok || t == 0 {
		return err
	}
	f := float32(t / 100)
	dr, dg, db := 20*f, 5*f, -30*f
	if f > 0 {
		dr, dg, db = 30*f, 10*f, -20*f
	}
	shift(buf, dr, dg, db)
	return nil
}

// Tint moves along the green-magenta axis. Positive values add magenta
// (red and blue +15f, green -20f); negative values add green.
func Tint(buf *pixbuf.Buffer, t float64) error {
	ok, err := prepare("tint", buf)
	if !ok || t == 0 {
		return err
	}
	f := float32(t / 100)
	shift(buf, 15*f, -20*f, 15*f)
	return nil
}

func shift(buf *pixbuf.Buffer, dr, dg, db float32) {
	pix := buf.Pix
	for i := 0; i < len(pix); i += 4 {
		r, g, b := rgbAt(pix, i)
		setRGB(pix, i, r+dr, g+dg, b+db)
	}
}
