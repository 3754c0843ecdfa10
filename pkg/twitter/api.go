package twitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

// SearchPageSize is the fixed count sent with every search.
const SearchPageSize = 100

// Operation names, used for metrics and logs.
const (
	OpTweet       = "tweet"
	OpFavorite    = "favorite"
	OpUnfavorite  = "unfavorite"
	OpRetweet     = "retweet"
	OpUnretweet   = "unretweet"
	OpGetTweet    = "get_tweet"
	OpSearch      = "search"
	OpUploadMedia = "upload_media"
)

// Tweet posts status. Spaces in the text are sent as %20.
func (c *Client) Tweet(ctx context.Context, status string, opts ...TweetOption) (*Tweet, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}
	params.Set("status", status)

	return c.tweetCall(ctx, OpTweet, MethodPost, "statuses/update.json", params)
}

func (c *Client) Favorite(ctx context.Context, id int64) (*Tweet, error) {
	return c.tweetCall(ctx, OpFavorite, MethodPost, "favorites/create.json", idParams(id))
}

func (c *Client) Unfavorite(ctx context.Context, id int64) (*Tweet, error) {
	return c.tweetCall(ctx, OpUnfavorite, MethodPost, "favorites/destroy.json", idParams(id))
}

func (c *Client) Retweet(ctx context.Context, id int64) (*Tweet, error) {
	return c.tweetCall(ctx, OpRetweet, MethodPost, fmt.Sprintf("statuses/retweet/%d.json", id), nil)
}

func (c *Client) Unretweet(ctx context.Context, id int64) (*Tweet, error) {
	return c.tweetCall(ctx, OpUnretweet, MethodPost, fmt.Sprintf("statuses/unretweet/%d.json", id), nil)
}

// GetTweet fetches a single status by id.
func (c *Client) GetTweet(ctx context.Context, id int64) (*Tweet, error) {
	return c.tweetCall(ctx, OpGetTweet, MethodGet, "statuses/show.json", idParams(id))
}

// Search returns the statuses of the first page matching query. Use
// SearchPage to get the cursors for further pages.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) ([]Tweet, error) {
	page, err := c.SearchPage(ctx, query, opts...)
	if err != nil {
		return nil, err
	}
	return page.Statuses, nil
}

// SearchPage returns one page of up to SearchPageSize statuses together with
// its metadata.
func (c *Client) SearchPage(ctx context.Context, query string, opts ...SearchOption) (*SearchResult, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(SearchPageSize))

	var result SearchResult
	if err := c.call(ctx, OpSearch, MethodGet, c.apiBaseURL, "search/tweets.json", params, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadMedia uploads r as a single multipart part named "media" and returns
// the id to attach with WithMediaIDs. The body is not part of the signature.
func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader) (MediaID, error) {
	return c.upload(ctx, func() (*payload, error) {
		return multipartPayload(filename, r)
	})
}

// UploadFile uploads the file at path.
func (c *Client) UploadFile(ctx context.Context, path string) (MediaID, error) {
	return c.upload(ctx, func() (*payload, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open media file: %w", err)
		}
		defer f.Close()
		return multipartPayload(filepath.Base(path), f)
	})
}

func (c *Client) upload(ctx context.Context, buildBody func() (*payload, error)) (MediaID, error) {
	var media mediaResponse
	if err := c.call(ctx, OpUploadMedia, MethodPost, c.uploadBaseURL, "media/upload.json", nil, buildBody, &media); err != nil {
		return 0, err
	}
	return MediaID(*media.MediaID), nil
}

func (c *Client) tweetCall(ctx context.Context, operation string, method Method, path string, params url.Values) (*Tweet, error) {
	var tweet Tweet
	if err := c.call(ctx, operation, method, c.apiBaseURL, path, params, nil, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func idParams(id int64) url.Values {
	return url.Values{"id": []string{strconv.FormatInt(id, 10)}}
}

func multipartPayload(filename string, r io.Reader) (*payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("media", filename)
	if err != nil {
		return nil, errors.Wrap(err, errors.TypeTransport, "create multipart part")
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, errors.Wrap(err, errors.TypeTransport, "copy media")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.TypeTransport, "close multipart writer")
	}

	return &payload{
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}
