// Command playthrough runs a headless session with scripted input and logs
// every notification. It walks right through each level, always picks the
// same option index and stops at the closing screen or the time limit.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/milk9111/darkdepths/component"
	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
	"github.com/milk9111/darkdepths/system"
)

type logAudio struct{}

func (logAudio) Play(cue component.Cue) { log.Printf("audio: %s", cue) }
func (logAudio) StartMusic()            { log.Printf("audio: music on") }
func (logAudio) StopMusic()             { log.Printf("audio: music off") }

type logUI struct {
	done bool
}

func (u *logUI) Health(float64, float64) {}

func (u *logUI) Notify(n system.Notice) {
	switch n.Kind {
	case system.NoticeStateChanged:
		log.Printf("ui: state %s", n.State)
	case system.NoticeLevelEntered:
		log.Printf("ui: entered %q", n.Level)
	case system.NoticeClosing:
		log.Printf("ui: %s", n.Title)
		for _, l := range n.Lines {
			log.Printf("ui:   %s", l)
		}
		u.done = true
	default:
		log.Printf("ui: %s %s %v", n.Kind, n.Title, n.Lines)
	}
}

func main() {
	character := flag.String("character", "steve", "character preset")
	choice := flag.Int("choice", 0, "option index picked at every choice")
	limit := flag.Duration("limit", 5*time.Minute, "simulated time limit")
	seed := flag.Uint64("seed", 1, "random seed")
	debug := flag.Bool("debug", false, "log game internals")
	flag.Parse()
	log.SetFlags(0)

	chars, err := prefabs.LoadCharacterSpec()
	if err != nil {
		log.Fatal(err)
	}
	story, err := prefabs.LoadStorySpec()
	if err != nil {
		log.Fatal(err)
	}

	ui := &logUI{}
	g, err := system.NewGame(system.Config{
		Characters: chars,
		Story:      story,
		Audio:      logAudio{},
		UI:         ui,
		Seed:       *seed,
		Debug:      *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	must(g.OpenCharacterSelect())
	must(g.SelectCharacter(obj.CharacterType(*character)))
	must(g.ConfirmCharacter())

	const frame = time.Second / 60
	for g.Now() < *limit && !ui.done {
		in := obj.InputState{}
		switch g.State() {
		case system.StatePlaying:
			in = obj.InputState{MoveX: 1, Jump: true}
		case system.StatePaused:
			must(g.RetryLevel())
		default:
			if b, ok := g.Beat(); ok {
				switch b.Kind() {
				case narrative.KindManual:
					must(g.AdvanceDialogue())
				case narrative.KindChoice:
					must(g.Choose(min(*choice, len(b.Options)-1)))
				}
			}
		}
		g.Tick(frame, in)
	}

	log.Printf("finished at %s in %s, sacrifices %v", g.Now(), g.State(), g.Sacrifices())
	if !ui.done {
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
