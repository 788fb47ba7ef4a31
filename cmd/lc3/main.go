// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/lc3/emulator"
	"github.com/ezrec/lc3/io"
)

func main() {
	var verbose bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Printf("lc3 [image-file1] ...\n")
		os.Exit(2)
	}

	emu := emulator.New()
	emu.Verbose = verbose

	for _, path := range flag.Args() {
		if err := emu.LoadImage(path); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	keys := io.NewTerm(os.Stdin)
	if err := keys.Raw(); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.SetKeyboard(keys)

	// Restore the terminal on interrupt as well as on normal exit.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		keys.Restore()
		fmt.Println()
		os.Exit(130)
	}()

	err := emu.Run()
	keys.Restore()
	if err != nil {
		log.Fatal(err)
	}
}
