package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/twitterbot/pkg/twitter"
)

type tweetAction func(c *twitter.Client, ctx context.Context, id int64) (*twitter.Tweet, error)

func newTweetCmd(a *app) *cobra.Command {
	var mediaIDs []string
	var mediaPaths []string
	var replyTo int64

	cmd := &cobra.Command{
		Use:   "tweet <text>",
		Short: "Post a tweet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status := strings.Join(args, " ")

			ids, err := parseMediaIDs(mediaIDs)
			if err != nil {
				return err
			}
			for _, path := range mediaPaths {
				var id twitter.MediaID
				err := a.spin("Uploading "+path+"...", func() error {
					var err error
					id, err = a.client.UploadFile(ctx, path)
					return err
				})
				if err != nil {
					return fmt.Errorf("upload %s: %w", path, err)
				}
				fmt.Fprintf(a.errOut, "%s Uploaded %s as media %s\n", success("✓"), path, id)
				ids = append(ids, id)
			}

			var opts []twitter.TweetOption
			if len(ids) > 0 {
				opts = append(opts, twitter.WithMediaIDs(ids...))
			}
			if cmd.Flags().Changed("reply-to") {
				opts = append(opts, twitter.WithReplyTo(replyTo))
			}

			var tweet *twitter.Tweet
			err = a.spin("Posting tweet...", func() error {
				tweet, err = a.client.Tweet(ctx, status, opts...)
				return err
			})
			if err != nil {
				return err
			}

			return a.printTweet(tweet, "Posted")
		},
	}

	cmd.Flags().StringSliceVar(&mediaIDs, "media-id", nil, "Attach previously uploaded media (repeatable)")
	cmd.Flags().StringArrayVar(&mediaPaths, "media", nil, "Upload a file and attach it (repeatable)")
	cmd.Flags().Int64Var(&replyTo, "reply-to", 0, "Post as a reply to this tweet id")

	return cmd
}

// newTweetActionCmd builds the single-id commands: favorite, retweet, show
// and their inverses.
func newTweetActionCmd(a *app, use, short string, action tweetAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTweetID(args[0])
			if err != nil {
				return err
			}

			var tweet *twitter.Tweet
			err = a.spin(fmt.Sprintf("Running %s on %d...", use, id), func() error {
				tweet, err = action(a.client, cmd.Context(), id)
				return err
			})
			if err != nil {
				return err
			}

			return a.printTweet(tweet, actionVerb(use))
		},
	}
}

func actionVerb(use string) string {
	switch use {
	case "favorite":
		return "Liked"
	case "unfavorite":
		return "Unliked"
	case "retweet":
		return "Retweeted"
	case "unretweet":
		return "Unretweeted"
	default:
		return "Fetched"
	}
}

func parseTweetID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid tweet id %q", s)
	}
	return id, nil
}

func parseMediaIDs(raw []string) ([]twitter.MediaID, error) {
	ids := make([]twitter.MediaID, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid media id %q", s)
		}
		ids = append(ids, twitter.MediaID(id))
	}
	return ids, nil
}
