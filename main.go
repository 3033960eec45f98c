package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"notedeck/app"
	"notedeck/config"
	"notedeck/inspect"
	"notedeck/log"
	"notedeck/ui/overlay"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.4.0"
	dirFlag string

	rootCmd = &cobra.Command{
		Use:   "notedeck",
		Short: "notedeck - Browse a directory of markdown notes and export them to the clipboard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("notedeck needs an interactive terminal")
			}

			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			return app.Run(context.Background(), app.Options{
				NotesDir: dirFlag,
				Config:   cfg,
			})
		},
	}

	placeAnchor   string
	placeHeight   int
	placeViewport string
	placeGaps     = overlay.DefaultGaps

	placeCmd = &cobra.Command{
		Use:   "place",
		Short: "Compute where an overlay of the given height opens next to an anchor",
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := parseAnchor(placeAnchor)
			if err != nil {
				return err
			}
			vp, err := parseViewport(placeViewport)
			if err != nil {
				return err
			}
			if placeHeight < 0 {
				return fmt.Errorf("height must not be negative")
			}

			p := overlay.ComputePlacement(anchor, overlay.Size{Height: placeHeight}, vp, placeGaps)
			out, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			statePath, err := config.StatePath()
			if err != nil {
				return fmt.Errorf("failed to get state path: %w", err)
			}
			fmt.Printf("State: %s\n", statePath)
			fmt.Printf("Log: %s\n", log.FileName())

			// With NOTEDECK_INSPECT set, show the last snapshot a running
			// browser wrote.
			if inspectPath := inspect.GetInspectFile(); inspectPath != "" {
				fmt.Printf("Inspect: %s\n", inspectPath)
				if snapshot, err := inspect.ReadSnapshot(inspectPath); err == nil {
					fmt.Print(snapshot.ToText())
				}
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of notedeck",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("notedeck version %s\n", version)
		},
	}
)

// parseAnchor reads "top,left,right,bottom".
func parseAnchor(s string) (overlay.AnchorRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return overlay.AnchorRect{}, fmt.Errorf("anchor must be top,left,right,bottom: %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return overlay.AnchorRect{}, fmt.Errorf("invalid anchor %q: %w", s, err)
		}
		v[i] = n
	}
	top, left, right, bottom := v[0], v[1], v[2], v[3]
	if right < left || bottom < top {
		return overlay.AnchorRect{}, fmt.Errorf("anchor %q has negative size", s)
	}
	return overlay.AnchorRect{
		Top: top, Left: left, Right: right, Bottom: bottom,
		Width: right - left, Height: bottom - top,
	}, nil
}

// parseViewport reads "WxH".
func parseViewport(s string) (overlay.Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return overlay.Viewport{}, fmt.Errorf("viewport must be WIDTHxHEIGHT: %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return overlay.Viewport{}, fmt.Errorf("invalid viewport width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return overlay.Viewport{}, fmt.Errorf("invalid viewport height %q: %w", h, err)
	}
	return overlay.Viewport{Width: width, Height: height}, nil
}

func init() {
	rootCmd.Flags().StringVarP(&dirFlag, "dir", "d", "",
		"Notes directory (defaults to notes_dir from the config file)")

	placeCmd.Flags().StringVar(&placeAnchor, "anchor", "", "Anchor rectangle as top,left,right,bottom")
	placeCmd.Flags().IntVar(&placeHeight, "height", 0, "Overlay height")
	placeCmd.Flags().StringVar(&placeViewport, "viewport", "80x24", "Viewport as WIDTHxHEIGHT")
	placeCmd.Flags().IntVar(&placeGaps.Above, "gap-above", placeGaps.Above, "Gap between the anchor and an overlay above it")
	placeCmd.Flags().IntVar(&placeGaps.Below, "gap-below", placeGaps.Below, "Gap between the anchor and an overlay below it")
	if err := placeCmd.MarkFlagRequired("anchor"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
