package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotimcp/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Crawl runs one crawl and prints the report, or the full result with --json.
func (r *Runner) Crawl(ctx context.Context, cmd *cli.Command) error {
	subreddit := cmd.String("subreddit")
	if subreddit == "" {
		subreddit = r.config.Reddit.Subreddit
	}

	progress := make(chan tasks.ProgressUpdate, 8)
	done := make(chan struct{})
	go r.logProgress(progress, done)

	result, err := r.crawler().Crawl(ctx, subreddit, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if err := r.writePlain("%s\n", result.Report()); err != nil {
		return err
	}

	summary := fmt.Sprintf("scanned %d posts and %d comments", result.PostsScanned, result.CommentsScanned)
	r.logger.Info(r.palette.Help(summary), "crawl_id", result.CrawlID)
	for _, failure := range result.Failures {
		r.logger.Warn(r.palette.Warn("skipped post"), "post_id", failure.PostID, "title", failure.Title, "error", failure.Error)
	}
	return nil
}
