package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
	"github.com/milk9111/darkdepths/system"
)

const (
	toastFrames   = 3 * 60
	panelWidth    = common.WorldWidth * 2 / 3
	dialogueWidth = common.WorldWidth - 80
	barWidth      = 200
	barHeight     = 10
)

var (
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dimColor    = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	speakerTint = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	warnColor   = color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff}
)

// actions are the player intents the overlay can raise.
type actions interface {
	OpenCharacterSelect()
	SelectCharacter(t obj.CharacterType)
	ConfirmCharacter()
	AdvanceDialogue()
	Choose(i int)
	Retry()
	Restart()
	PlayAgain()
}

// UI is the ebitenui overlay. It implements system.UISink and rebuilds its
// widget tree only when what it shows changes.
type UI struct {
	ui    *ebitenui.UI
	face  ebtext.Face
	act   actions
	chars *prefabs.CharacterSpec

	panelImg *imageui.NineSlice
	btnImg   *imageui.NineSlice
	hoverImg *imageui.NineSlice

	playerHealth    float64
	companionHealth float64

	popup   *system.Notice
	closing *system.Notice
	theEnd  string
	toast   string
	toastN  int
	key     string
}

func NewUI(act actions) *UI {
	u := &UI{
		act:      act,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		panelImg: imageui.NewNineSliceColor(color.NRGBA{A: 200}),
		btnImg:   imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}),
		hoverImg: imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x44, B: 0x66, A: 0xff}),
	}
	u.ui = &ebitenui.UI{Container: widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))}
	return u
}

// Reset clears per-session overlay state for a new run.
func (u *UI) Reset(chars *prefabs.CharacterSpec) {
	u.chars = chars
	u.popup, u.closing = nil, nil
	u.theEnd, u.toast, u.toastN = "", "", 0
	u.playerHealth, u.companionHealth = 1, 1
	u.key = ""
}

func (u *UI) Health(player, companion float64) {
	u.playerHealth, u.companionHealth = player, companion
}

func (u *UI) Notify(n system.Notice) {
	switch n.Kind {
	case system.NoticeGameOver, system.NoticeHealthZero:
		u.popup = &n
	case system.NoticeResumed:
		u.popup = nil
	case system.NoticeFallWarning:
		u.toast = strings.Join(n.Lines, " ")
		if u.toast == "" {
			u.toast = fmt.Sprintf("%d falls left", n.Remaining)
		}
		u.toastN = toastFrames
	case system.NoticeTheEnd:
		u.theEnd = n.Title
	case system.NoticeClosing:
		u.closing = &n
	}
}

// Update rebuilds the widget tree if the screen changed and runs ebitenui.
func (u *UI) Update(v system.View, selected obj.CharacterType) {
	if u.toastN > 0 {
		u.toastN--
	}
	if key := u.screenKey(v, selected); key != u.key {
		u.key = key
		u.ui.Container = u.build(v, selected)
	}
	u.ui.Update()
}

func (u *UI) screenKey(v system.View, selected obj.CharacterType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%t|%t", v.State, selected, u.theEnd, u.popup != nil, u.closing != nil)
	if v.Dialogue != nil {
		fmt.Fprintf(&b, "|%s|%s|%d", v.Dialogue.Speaker, v.Dialogue.Text, len(v.Dialogue.Options))
	}
	return b.String()
}

func (u *UI) Draw(screen *ebiten.Image, v system.View) {
	switch v.State {
	case system.StatePlaying, system.StatePaused, system.StateDialogue:
		u.drawBars(screen)
	}
	u.ui.Draw(screen)
	if u.toastN > 0 && u.toast != "" {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(common.WorldWidth/2-float64(len(u.toast))*3.5, 60)
		op.ColorScale.ScaleWithColor(warnColor)
		ebtext.Draw(screen, u.toast, u.face, op)
	}
}

func (u *UI) drawBars(screen *ebiten.Image) {
	bar := func(y float32, frac float64, clr color.Color) {
		vector.DrawFilledRect(screen, 20, y, barWidth, barHeight, colornames.Darkslategray, false)
		vector.DrawFilledRect(screen, 20, y, float32(frac*barWidth), barHeight, clr, false)
	}
	bar(common.WorldHeight-40, u.playerHealth, colornames.Firebrick)
	bar(common.WorldHeight-24, u.companionHealth, colornames.Skyblue)
}

func (u *UI) build(v system.View, selected obj.CharacterType) *widget.Container {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	switch {
	case u.closing != nil:
		root.AddChild(u.closingPanel())
	case u.theEnd != "":
		root.AddChild(u.titlePanel(u.theEnd))
	case v.State == system.StateMenu:
		root.AddChild(u.menuPanel())
	case v.State == system.StateCharacterSelect:
		root.AddChild(u.selectPanel(selected))
	case v.State == system.StatePaused && u.popup != nil:
		root.AddChild(u.popupPanel(*u.popup))
	case v.Dialogue != nil:
		root.AddChild(u.dialoguePanel(*v.Dialogue))
	}
	return root
}

func (u *UI) panel(width int, vertical widget.AnchorLayoutPosition) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(u.panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   vertical,
			}),
		),
	)
}

func (u *UI) text(s string, clr color.Color, width int) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, &u.face, clr),
		widget.TextOpts.MaxWidth(float64(width)),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (u *UI) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: u.btnImg, Hover: u.hoverImg, Pressed: u.hoverImg}),
		widget.ButtonOpts.Text(label, &u.face, &widget.ButtonTextColor{Idle: textColor}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 12, Right: 12}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
}

func (u *UI) menuPanel() *widget.Container {
	p := u.panel(panelWidth, widget.AnchorLayoutPositionCenter)
	p.AddChild(u.text("THE DARK DEPTHS", textColor, panelWidth))
	p.AddChild(u.text("Some paths require sacrifice.", dimColor, panelWidth))
	p.AddChild(u.button("Begin", u.act.OpenCharacterSelect))
	return p
}

func (u *UI) selectPanel(selected obj.CharacterType) *widget.Container {
	p := u.panel(panelWidth, widget.AnchorLayoutPositionCenter)
	p.AddChild(u.text("Choose who descends", textColor, panelWidth))
	if u.chars == nil {
		return p
	}

	for _, preset := range u.chars.Characters {
		label := preset.Title
		if preset.Type == selected {
			label = "> " + label + " <"
		}
		t := preset.Type
		p.AddChild(u.button(label, func() { u.act.SelectCharacter(t) }))
		if preset.Type == selected {
			for _, line := range preset.Description {
				p.AddChild(u.text(line, dimColor, panelWidth))
			}
		}
	}
	p.AddChild(u.button("Descend", u.act.ConfirmCharacter))
	return p
}

func (u *UI) dialoguePanel(b narrative.Beat) *widget.Container {
	p := u.panel(dialogueWidth, widget.AnchorLayoutPositionEnd)
	if b.Speaker != "" {
		p.AddChild(u.text(b.Speaker, speakerTint, dialogueWidth))
	}
	p.AddChild(u.text(b.Text, textColor, dialogueWidth))

	switch b.Kind() {
	case narrative.KindManual:
		p.AddChild(u.button("Continue", u.act.AdvanceDialogue))
	case narrative.KindChoice:
		for i, o := range b.Options {
			p.AddChild(u.button(fmt.Sprintf("%d. %s", i+1, o.Text), func() { u.act.Choose(i) }))
		}
	}
	return p
}

func (u *UI) popupPanel(n system.Notice) *widget.Container {
	p := u.panel(panelWidth, widget.AnchorLayoutPositionCenter)
	p.AddChild(u.text(n.Title, warnColor, panelWidth))
	for _, line := range n.Lines {
		p.AddChild(u.text(line, textColor, panelWidth))
	}
	for _, r := range n.Recoveries() {
		switch r {
		case system.RecoveryRetry:
			p.AddChild(u.button("Retry Level  [R]", u.act.Retry))
		case system.RecoveryRestart:
			p.AddChild(u.button("Restart Game  [Enter]", u.act.Restart))
		}
	}
	return p
}

func (u *UI) titlePanel(title string) *widget.Container {
	p := u.panel(panelWidth, widget.AnchorLayoutPositionCenter)
	p.AddChild(u.text(title, textColor, panelWidth))
	return p
}

func (u *UI) closingPanel() *widget.Container {
	p := u.panel(panelWidth, widget.AnchorLayoutPositionCenter)
	p.AddChild(u.text(u.closing.Title, speakerTint, panelWidth))
	for _, line := range u.closing.Lines {
		p.AddChild(u.text(line, textColor, panelWidth))
	}
	p.AddChild(u.button("Play again", u.act.PlayAgain))
	return p
}
