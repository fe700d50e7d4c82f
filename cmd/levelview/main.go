// Command levelview previews level layouts. Left and right switch between the
// levels named by the story; files under levels/ reload when saved.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/levels"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
)

var kindColors = map[obj.PlatformKind]color.RGBA{
	obj.PlatformNormal:    colornames.Gray,
	obj.PlatformCrumbling: colornames.Sienna,
	obj.PlatformMystical:  colornames.Mediumpurple,
}

type viewer struct {
	names   []string
	current int
	layout  *levels.Layout
	err     error
	watcher *prefabs.Watcher
	exitX   float64
}

func (v *viewer) load() {
	v.layout, v.err = levels.LoadLayout(v.names[v.current])
	if v.err != nil {
		log.Printf("levelview: %v", v.err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.current = (v.current + 1) % len(v.names)
		v.load()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.current = (v.current - 1 + len(v.names)) % len(v.names)
		v.load()
	}
	if v.watcher != nil && len(v.watcher.Drain()) > 0 {
		v.load()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x0a, 0x0a, 0x0f, 0xff})
	title := v.names[v.current]
	if v.err != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%v", title, v.err))
		return
	}

	for _, p := range v.layout.Platforms {
		kind := p.Type
		if kind == "" {
			kind = obj.PlatformNormal
		}
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), kindColors[kind], false)
	}
	for _, e := range v.layout.Enemies {
		vector.StrokeLine(screen, float32(e.PatrolStart), float32(e.Y-4), float32(e.PatrolEnd+16), float32(e.Y-4), 1, colornames.Darkred, false)
		vector.DrawFilledRect(screen, float32(e.X), float32(e.Y), 16, 12, colornames.Red, false)
	}
	if v.exitX > 0 {
		vector.StrokeLine(screen, float32(v.exitX), 0, float32(v.exitX), common.WorldHeight, 1, colornames.Gold, false)
	}
	vector.StrokeLine(screen, 0, float32(obj.VoidY), common.WorldWidth, float32(obj.VoidY), 1, colornames.Darkslateblue, false)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s %q  %d/%d", title, v.layout.Name, v.current+1, len(v.names)))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.WorldWidth, common.WorldHeight
}

func main() {
	watch := flag.Bool("watch", true, "reload levels/ from disk when files change")
	flag.Parse()

	story, err := prefabs.LoadStorySpec()
	if err != nil {
		log.Fatal(err)
	}

	v := &viewer{names: story.Levels, exitX: story.Progression.ExitX}
	if args := flag.Args(); len(args) > 0 {
		v.names = args
	}
	v.load()

	if *watch {
		w, err := prefabs.NewWatcher("levels")
		if err != nil {
			log.Printf("levelview: watch disabled: %v", err)
		} else {
			v.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(common.WorldWidth, common.WorldHeight)
	ebiten.SetWindowTitle("levelview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
