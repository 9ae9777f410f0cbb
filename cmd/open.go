package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spintrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// Open launches the admin web UI in the default browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	base := r.config.API.PublicURL
	if base == "" {
		base = r.config.API.BaseURL
	}
	if base == "" {
		return fmt.Errorf("%w: no public or base URL configured", shared.ErrMissingConfig)
	}

	url := strings.TrimRight(base, "/")
	if songID := cmd.String("song"); songID != "" {
		url += "/song_detail/" + songID
	}

	r.logger.Info("opening browser", "url", url)

	if err := shared.OpenBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	r.writePlainln("✓ Opened %s", url)
	return nil
}
