package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"
)

const (
	charW = 8
	charH = 16
)

// Recorder captures canvas frames for a GIF animation.
type Recorder struct {
	frames []*image.Paletted
	delay  int
}

// NewRecorder records frames shown delay hundredths of a second apart.
func NewRecorder(delay int) *Recorder {
	return &Recorder{delay: delay}
}

// frameDelay converts a frame rate to the nearest whole GIF delay, at
// least one hundredth of a second.
func frameDelay(fps int) int {
	if fps <= 0 {
		return 1
	}
	return max(1, int(math.Round(100/float64(fps))))
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes the lit dots of c, each cell charW x charH pixels.
func (r *Recorder) Capture(c *Canvas) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4

	for y := 0; y < c.DotHeight(); y++ {
		for x := 0; x < c.DotWidth(); x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Encode writes the captured frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes the recording to path. An empty recording writes nothing.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
