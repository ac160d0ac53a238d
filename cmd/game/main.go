package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/davrk/errblast/internal/audio"
	"github.com/davrk/errblast/internal/config"
	"github.com/davrk/errblast/internal/game"
	"github.com/davrk/errblast/internal/theme"
)

func main() {
	code := config.GetEnv("ERRBLAST_CODE", "404")
	if len(os.Args) > 1 {
		code = os.Args[1]
	}

	cue, err := audio.NewSpeakerCue()
	if err != nil {
		log.Warn("audio unavailable, continuing silent", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	l := game.NewLoop(bufio.NewReader(os.Stdin), os.Stdout, game.Options{
		Theme:      theme.FromEnv(code),
		Cue:        cue,
		SpritePath: config.GetEnv("ERRBLAST_SPRITE", ""),
	})
	if err := l.Run(context.Background()); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
