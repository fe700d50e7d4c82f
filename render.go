package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
	"github.com/milk9111/darkdepths/system"
)

var (
	backgroundColor = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0f, A: 0xff}
	corruptionColor = color.RGBA{R: 0x1a, G: 0x00, B: 0x1a, A: 0xff}
	enemyColor      = color.RGBA{R: 0x8b, G: 0x00, B: 0x00, A: 0xff}
	enemyEyeColor   = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}

	platformColors = map[obj.PlatformKind]color.RGBA{
		obj.PlatformNormal:    {R: 0x44, G: 0x44, B: 0x44, A: 0xff},
		obj.PlatformCrumbling: {R: 0x66, G: 0x44, B: 0x22, A: 0xff},
		obj.PlatformMystical:  {R: 0x44, G: 0x22, B: 0x66, A: 0xff},
	}
)

const blurPasses = 4

// Renderer draws a system.View with flat rectangles. The world is drawn into
// an offscreen layer so the ending blur can smear it.
type Renderer struct {
	characters *prefabs.CharacterSpec
	layer      *ebiten.Image
}

func NewRenderer(characters *prefabs.CharacterSpec) *Renderer {
	return &Renderer{
		characters: characters,
		layer:      ebiten.NewImage(common.WorldWidth, common.WorldHeight),
	}
}

func (r *Renderer) Draw(screen *ebiten.Image, v system.View) {
	screen.Fill(backgroundColor)
	if v.State == system.StateMenu || v.State == system.StateCharacterSelect {
		return
	}

	r.layer.Clear()
	r.drawWorld(r.layer, v)

	if v.Blur <= 0 {
		screen.DrawImage(r.layer, nil)
		return
	}

	// approximate a gaussian blur with offset translucent copies
	for i := 0; i < blurPasses; i++ {
		angle := float64(i) * math.Pi / 2
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(math.Cos(angle)*v.Blur, math.Sin(angle)*v.Blur)
		op.ColorScale.ScaleAlpha(1 / float32(blurPasses-i))
		screen.DrawImage(r.layer, op)
	}
}

func (r *Renderer) drawWorld(dst *ebiten.Image, v system.View) {
	cam := v.Camera

	if v.Level != nil {
		for _, p := range v.Level.Platforms {
			if !p.Active {
				continue
			}
			fillRect(dst, p.Position.Sub(cam), p.Size, platformColors[p.Kind])
		}
		for _, e := range v.Level.Enemies {
			if !e.Active {
				continue
			}
			pos := e.Position.Sub(cam)
			fillRect(dst, pos, e.Size, enemyColor)
			fillRect(dst, pos.Add(common.Vec(5, 5)), common.Vec(4, 4), enemyEyeColor)
			fillRect(dst, pos.Add(common.Vec(e.Size.X-9, 5)), common.Vec(4, 4), enemyEyeColor)
			// legs shuffle with the crawl phase
			for i := 0.0; i < 3; i++ {
				lift := math.Sin(e.Crawl+i*2) * 2
				fillRect(dst, pos.Add(common.Vec(2+i*5, e.Size.Y+lift)), common.Vec(2, 3), enemyColor)
			}
		}
	}

	if c := v.Companion; c != nil && system.Visible(c.Position.Y) {
		r.drawCompanion(dst, c, cam)
	}
	if p := v.Player; p != nil && system.Visible(p.Position.Y) {
		r.drawPlayer(dst, p, cam)
	}

	for _, pt := range v.Particles {
		clr := pt.Color
		clr.A = uint8(float64(clr.A) * pt.Alpha())
		fillRect(dst, pt.Position.Sub(cam), common.Vec(pt.Size, pt.Size), clr)
	}

	if v.Overlay > 0 {
		shade := corruptionColor
		shade.A = uint8(v.Overlay * 0xff)
		vector.DrawFilledRect(dst, 0, 0, common.WorldWidth, common.WorldHeight, shade, false)
	}

	if v.ShowLevelName() {
		ebitenutil.DebugPrintAt(dst, v.Level.Name, 20, 20)
	}
}

func (r *Renderer) drawPlayer(dst *ebiten.Image, p *obj.Player, cam common.Vector2) {
	body, head, hair := colornames.Royalblue, colornames.Peachpuff, colornames.Saddlebrown
	if r.characters != nil {
		if preset, err := r.characters.Preset(p.Character()); err == nil {
			body = preset.Body.RGBA8(body)
			head = preset.Head.RGBA8(head)
			hair = preset.Hair.RGBA8(hair)
		}
	}

	pos := p.Position.Sub(cam)
	w := p.Size.X
	fillRect(dst, pos.Add(common.Vec(0, 12)), common.Vec(w, p.Size.Y-12), body)
	fillRect(dst, pos, common.Vec(w, 12), head)
	fillRect(dst, pos, common.Vec(w, 4), hair)

	eyeX := 4.0
	if p.FacingRight {
		eyeX = w - 8
	}
	fillRect(dst, pos.Add(common.Vec(eyeX, 6)), common.Vec(3, 3), colornames.Black)
}

func (r *Renderer) drawCompanion(dst *ebiten.Image, c *obj.Companion, cam common.Vector2) {
	pos := c.Position.Sub(cam)
	glow := colornames.Skyblue
	glow.A = uint8(c.Glow * 0x60)
	fillRect(dst, pos.Sub(common.Vec(4, 4)), c.Size.Add(common.Vec(8, 8)), glow)

	core := colornames.Lightcyan
	core.A = uint8(math.Max(c.Glow, 0.2) * 0xff)
	fillRect(dst, pos, c.Size, core)
}

func fillRect(dst *ebiten.Image, pos, size common.Vector2, clr color.RGBA) {
	vector.DrawFilledRect(dst, float32(pos.X), float32(pos.Y), float32(size.X), float32(size.Y), clr, false)
}
