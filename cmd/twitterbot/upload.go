package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NethermindEth/twitterbot/pkg/twitter"
)

func newUploadCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload an image and print its media id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var id twitter.MediaID
			err := a.spin("Uploading "+path+"...", func() error {
				var err error
				id, err = a.client.UploadFile(cmd.Context(), path)
				return err
			})
			if err != nil {
				return err
			}

			if status == "" {
				if a.jsonOutput {
					return a.printJSON(map[string]string{"media_id": id.String()})
				}
				fmt.Fprintf(a.out, "\n%s Uploaded %s, media id %s\n", success("✓"), path, info(id.String()))
				return nil
			}

			var tweet *twitter.Tweet
			err = a.spin("Posting tweet...", func() error {
				tweet, err = a.client.Tweet(cmd.Context(), status, twitter.WithMediaIDs(id))
				return err
			})
			if err != nil {
				return err
			}
			return a.printTweet(tweet, "Posted")
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Also post a tweet with the uploaded media attached")

	return cmd
}
