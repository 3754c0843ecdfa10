package twitter

import (
	"net/url"
	"strconv"
	"strings"
)

// TweetOption sets an optional parameter of statuses/update. Options cannot
// touch the status text itself.
type TweetOption func(url.Values)

// WithMediaIDs attaches previously uploaded media.
func WithMediaIDs(ids ...MediaID) TweetOption {
	return func(q url.Values) {
		if len(ids) == 0 {
			return
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = id.String()
		}
		q.Set("media_ids", strings.Join(parts, ","))
	}
}

// WithReplyTo posts the status as a reply to statusID.
func WithReplyTo(statusID int64) TweetOption {
	return func(q url.Values) {
		q.Set("in_reply_to_status_id", strconv.FormatInt(statusID, 10))
	}
}

// ResultType selects which results search/tweets favours.
type ResultType string

const (
	ResultMixed   ResultType = "mixed"
	ResultRecent  ResultType = "recent"
	ResultPopular ResultType = "popular"
)

// SearchOption sets an optional parameter of search/tweets. The query and the
// page size are fixed by Search.
type SearchOption func(url.Values)

func WithResultType(t ResultType) SearchOption {
	return func(q url.Values) {
		q.Set("result_type", string(t))
	}
}

// WithMaxID returns results with an id at most maxID.
func WithMaxID(maxID int64) SearchOption {
	return func(q url.Values) {
		q.Set("max_id", strconv.FormatInt(maxID, 10))
	}
}

// WithSinceID returns results with an id greater than sinceID.
func WithSinceID(sinceID int64) SearchOption {
	return func(q url.Values) {
		q.Set("since_id", strconv.FormatInt(sinceID, 10))
	}
}
