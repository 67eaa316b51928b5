// Package ogp はTodoのシェア用OGP画像（PNG）を生成します。
package ogp

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"go-todo-share/server/internal/models"
)

// OGPの推奨サイズ（1200x630）。
const (
	cardWidth  = 1200
	cardHeight = 630
	// basicfontは小さいので、1/4サイズで描画してから拡大する
	scale = 4
)

var (
	withinBG  = color.RGBA{R: 0xf5, G: 0xfa, B: 0xf5, A: 0xff}
	overdueBG = color.RGBA{R: 0x2b, G: 0x2b, B: 0x33, A: 0xff}
	withinFG  = color.RGBA{R: 0x22, G: 0x55, B: 0x33, A: 0xff}
	overdueFG = color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
	grayFG    = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// Renderer はTodoからシェアカードを描画します。
type Renderer struct {
	face font.Face
}

// NewRenderer は新しいRendererを作成します。
func NewRenderer() *Renderer {
	return &Renderer{face: basicfont.Face7x13}
}

// Render はTodoの内容と期限の状態をまとめたPNG画像を生成します。
// 既存のTodoであれば必ず有効なPNGを返します。
func (r *Renderer) Render(todo *models.Todo, today time.Time) ([]byte, error) {
	overdue := todo.Overdue(today)

	bg, fg := withinBG, withinFG
	caption := sanitize("DONE BY "+todo.DueDate, 44)
	if overdue {
		bg, fg = overdueBG, overdueFG
		caption = sanitize("OVERDUE SINCE "+todo.DueDate, 44)
	}

	small := image.NewRGBA(image.Rect(0, 0, cardWidth/scale, cardHeight/scale))
	fill(small, bg)

	// basicfontはASCIIのみ対応。描画できない文字は置き換える。
	r.drawText(small, 20, 50, fg, sanitize(todo.Content, 34))
	r.drawText(small, 20, 80, grayFG, caption)
	r.drawText(small, 20, 130, grayFG, "Todo!!")

	card := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	xdraw.NearestNeighbor.Scale(card, card.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return nil, fmt.Errorf("failed to encode ogp image: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawText(dst *image.RGBA, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fill(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// sanitize は描画できない文字を置き換え、カード幅に収まるように切り詰めます。
func sanitize(s string, max int) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			r = '*'
		}
		out = append(out, r)
		if len(out) >= max {
			break
		}
	}
	if len(out) == 0 {
		return "(no content)"
	}
	return string(out)
}
