// Command contentcheck loads every character, story and level file the game
// would load and exits non-zero if any of them is invalid.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/milk9111/darkdepths/levels"
	"github.com/milk9111/darkdepths/prefabs"
)

func main() {
	verbose := flag.Bool("v", false, "print a summary of each file")
	flag.Parse()
	log.SetFlags(0)

	if *verbose {
		for _, f := range []string{prefabs.CharactersFile, prefabs.StoryFile} {
			if t, ok := prefabs.ModTime(f); ok {
				log.Printf("%s: disk copy, modified %s", f, t.Format(time.DateTime))
			} else {
				log.Printf("%s: embedded", f)
			}
		}
	}

	failed := false
	fail := func(what string, err error) {
		log.Printf("FAIL %s: %v", what, err)
		failed = true
	}

	chars, err := prefabs.LoadCharacterSpec()
	if err != nil {
		fail(prefabs.CharactersFile, err)
	} else if *verbose {
		for _, c := range chars.Characters {
			log.Printf("character %-8s speed=%.0f jump=%.0f health=%.0f", c.Type, c.Speed, c.JumpPower, c.MaxHealth)
		}
	}

	story, err := prefabs.LoadStorySpec()
	if err != nil {
		fail(prefabs.StoryFile, err)
	} else {
		if *verbose {
			log.Printf("story: %d intro beats, %d level events, %d finale beats", len(story.Intro), len(story.LevelEvents), len(story.Finale))
		}
		for _, name := range story.Levels {
			l, err := levels.LoadLayout(name)
			if err != nil {
				fail(name, err)
				continue
			}
			if *verbose {
				log.Printf("level %s %q: %d platforms, %d enemies", name, l.Name, len(l.Platforms), len(l.Enemies))
			}
		}
	}

	if failed {
		os.Exit(1)
	}
	log.Printf("ok")
}
