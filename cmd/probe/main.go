// Command probe resolves a locator the way the player does and prints what
// it found, without opening the audio output.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/player"
)

func main() {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:          "probe <locator>",
		Short:        "Resolve a media locator and print its capability keys",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd.OutOrStdout(), args[0], timeout)
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "give up resolving after this long")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func probe(w io.Writer, raw string, timeout time.Duration) error {
	locator, err := playback.ParseLocator(raw)
	if err != nil {
		return err
	}

	p, err := player.New()
	if err != nil {
		return err
	}
	defer p.Close()

	asset := p.NewAsset(locator)
	done := make(chan struct{})
	asset.LoadValuesAsync(media.RequiredKeys, func() { close(done) })
	select {
	case <-done:
	case <-time.After(timeout):
		return fmt.Errorf("resolving %s: timed out after %s", raw, timeout)
	}

	fmt.Fprintf(w, "locator:   %s\n", locator)
	fmt.Fprintf(w, "asset:     %s\n", asset.ID())
	for _, key := range media.RequiredKeys {
		status, err := asset.StatusOfValue(key)
		if err != nil {
			fmt.Fprintf(w, "  %-22s %s (%v)\n", key, status, err)
			continue
		}
		fmt.Fprintf(w, "  %-22s %s\n", key, status)
	}

	readiness := media.ReadinessOf(asset, media.RequiredKeys)
	fmt.Fprintf(w, "readiness: %s\n", readiness)
	if readiness != media.ReadinessReady {
		return nil
	}

	if a, ok := asset.(*player.Asset); ok {
		if info, err := os.Stat(a.Path()); err == nil {
			fmt.Fprintf(w, "size:      %s\n", humanize.IBytes(uint64(info.Size())))
		}
	}

	item := p.NewItem(asset)
	if it, ok := item.(*player.Item); ok {
		fmt.Fprintf(w, "title:     %s\n", it.Title())
	}
	if d := item.Duration(); d.IsNumeric() {
		fmt.Fprintf(w, "duration:  %s\n", playback.FormatTime(d.Seconds()))
	} else {
		fmt.Fprintf(w, "duration:  unknown (%s)\n", item.Status())
	}
	return nil
}
