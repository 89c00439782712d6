package display

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	windowW = 1280
	windowH = 720

	// Width of the text panel on the right of the window.
	panelW = 360
	// ebitenutil's debug font is 6x16.
	lineH   = 16
	padding = 8
)

var panelBG = color.RGBA{0x18, 0x18, 0x18, 0xff}

// EbitenDisplay shows the camera image with the landmark text beside it.
// Space pauses and resumes playback; the wheel scrolls the text. The
// window closes once ctx is cancelled.
type EbitenDisplay struct {
	ctx      context.Context
	title    string
	frames   FrameSource
	text     TextSource
	playback Playback

	mu          sync.Mutex
	ebitenImage *ebiten.Image
	lastSeq     uint64
	scroll      int
}

// NewEbitenDisplay creates an Ebitengine-based display. frames and
// playback may be nil when no camera is available.
func NewEbitenDisplay(ctx context.Context, title string, frames FrameSource, text TextSource, playback Playback) *EbitenDisplay {
	return &EbitenDisplay{
		ctx:      ctx,
		title:    title,
		frames:   frames,
		text:     text,
		playback: playback,
	}
}

// Run starts the Ebitengine game loop. Must be called from the main goroutine.
func (d *EbitenDisplay) Run() error {
	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(d)
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}
	if d.playback != nil && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.playback.Toggle()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		d.mu.Lock()
		d.scroll -= int(dy * 3)
		if d.scroll < 0 {
			d.scroll = 0
		}
		d.mu.Unlock()
	}
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	videoW := max(sw-panelW, 1)

	d.drawVideo(screen, videoW, sh)
	d.drawText(screen, videoW, sw-videoW, sh)
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (d *EbitenDisplay) drawVideo(screen *ebiten.Image, viewW, viewH int) {
	if d.frames == nil {
		ebitenutil.DebugPrintAt(screen, "no camera", padding, padding)
		return
	}
	frame := d.frames.CurrentFrame()
	if frame == nil || frame.Image == nil {
		ebitenutil.DebugPrintAt(screen, "waiting for camera...", padding, padding)
		return
	}

	b := frame.Image.Bounds()
	if d.ebitenImage == nil ||
		d.ebitenImage.Bounds().Dx() != b.Dx() ||
		d.ebitenImage.Bounds().Dy() != b.Dy() {
		d.ebitenImage = ebiten.NewImage(b.Dx(), b.Dy())
		d.lastSeq = 0
	}
	if frame.Seq != d.lastSeq {
		d.ebitenImage.WritePixels(toRGBA(frame.Image).Pix)
		d.lastSeq = frame.Seq
	}

	scale, offsetX, offsetY := aspectFitTransform(float64(viewW), float64(viewH), float64(b.Dx()), float64(b.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(d.ebitenImage, op)
}

func (d *EbitenDisplay) drawText(screen *ebiten.Image, x, w, h int) {
	screen.SubImage(image.Rect(x, 0, x+w, h)).(*ebiten.Image).Fill(panelBG)

	lines := strings.Split(d.text.Text(), "\n")
	visible := max((h-2*padding)/lineH, 1)

	d.mu.Lock()
	maxScroll := max(len(lines)-visible, 0)
	if d.scroll > maxScroll {
		d.scroll = maxScroll
	}
	start := d.scroll
	d.mu.Unlock()

	end := min(start+visible, len(lines))
	ebitenutil.DebugPrintAt(screen, strings.Join(lines[start:end], "\n"), x+padding, padding)
}

// toRGBA returns img as a tightly packed *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// aspectFitTransform returns scale and offsets to fit frame into view with letterboxing.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}
