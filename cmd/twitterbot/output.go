package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/NethermindEth/twitterbot/pkg/twitter"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printTweet(tweet *twitter.Tweet, verb string) error {
	if a.jsonOutput {
		return a.printJSON(tweet)
	}

	fmt.Fprintf(a.out, "\n%s %s tweet %s\n", success("✓"), verb, info(tweet.IDStr()))
	writeTweet(a.out, tweet)
	return nil
}

func writeTweet(w io.Writer, tweet *twitter.Tweet) {
	header := fmt.Sprintf("@%s", tweet.User().ScreenName())
	if name := tweet.User().Name(); name != "" {
		header = fmt.Sprintf("%s (@%s)", name, tweet.User().ScreenName())
	}
	if created, err := tweet.CreatedAt(); err == nil {
		header += " · " + created.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(w, "  %s\n", color.New(color.Bold).Sprint(header))

	for _, line := range strings.Split(tweet.Text(), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}

	stats := fmt.Sprintf("♥ %d  ↻ %d", tweet.FavoriteCount(), tweet.RetweetCount())
	if tweet.Favorited() {
		stats += "  " + warn("liked")
	}
	if tweet.Retweeted() {
		stats += "  " + warn("retweeted")
	}
	if replyTo, ok := tweet.ReplyTo(); ok {
		stats += fmt.Sprintf("  reply to %d", replyTo)
	}
	fmt.Fprintf(w, "  %s\n", stats)
}
