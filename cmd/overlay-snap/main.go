package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"reply-overlay/internal/capture"
	"reply-overlay/internal/config"
	"reply-overlay/internal/logutil"
	"reply-overlay/internal/window"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	delay := flag.Duration("delay", 2*time.Second, "Wait before capturing, to focus the target window")
	outPath := flag.String("out", "capture.png", "Where to write the captured PNG")
	list := flag.Bool("list", false, "List capturable windows and the matcher's pick instead of capturing")
	verbose := flag.Bool("v", false, "Verbose output to stderr")
	flag.Parse()

	logutil.Setup(false)
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	opts := capture.Options{}
	if cfgSvc, err := config.New(); err == nil {
		cfg := cfgSvc.Get()
		opts.MaxWidth = cfg.Capture.MaxWidth
		opts.MaxHeight = cfg.Capture.MaxHeight
	} else {
		log.Printf("Using default capture options: %v", err)
	}

	pipeline := capture.NewPipeline(window.NewTracker(), window.NewRegistry(), capture.NewCodec(opts))

	if *delay > 0 {
		fmt.Fprintf(out, "Capturing in %s...\n", *delay)
		time.Sleep(*delay)
	}

	if *list {
		active, all, pick := pipeline.Candidates()
		printCandidates(out, active, all, pick)
		return nil
	}

	img, err := pipeline.Run()
	if err != nil {
		return err
	}
	data, err := img.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode capture: %w", err)
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outPath, err)
	}

	fmt.Fprintf(out, "Wrote %dx%d %s to %s\n", img.Width, img.Height, img.Format, *outPath)
	return nil
}

func printCandidates(out io.Writer, active window.ActiveInfo, all []window.Capturable, pick window.Capturable) {
	fmt.Fprintf(out, "Active: %q (%s)\n", active.Title, active.ProcessPath)
	for i, c := range all {
		marker := " "
		if pick != nil && c == pick {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %3d  %-24s %q\n", marker, i, c.AppName(), c.Title())
	}
	if pick == nil {
		fmt.Fprintln(out, "No match")
	}
}
