package twitter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the format of created_at timestamps in v1.1 payloads.
const TimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Tweet is a status as returned by the v1.1 API. It is read-only; decode it
// from JSON and use the accessors.
type Tweet struct {
	id                   int64
	idStr                string
	text                 string
	truncated            bool
	createdAt            string
	inReplyToStatusID    *int64
	inReplyToStatusIDStr *string
	inReplyToUserID      *int64
	inReplyToUserIDStr   *string
	inReplyToScreenName  *string
	user                 User
	isQuoteStatus        bool
	retweetCount         int64
	favoriteCount        int64
	favorited            bool
	retweeted            bool
}

type tweetJSON struct {
	ID                   *int64    `json:"id"`
	IDStr                string    `json:"id_str"`
	Text                 *string   `json:"text"`
	Truncated            bool      `json:"truncated"`
	CreatedAt            string    `json:"created_at,omitempty"`
	InReplyToStatusID    *int64    `json:"in_reply_to_status_id"`
	InReplyToStatusIDStr *string   `json:"in_reply_to_status_id_str"`
	InReplyToUserID      *int64    `json:"in_reply_to_user_id"`
	InReplyToUserIDStr   *string   `json:"in_reply_to_user_id_str"`
	InReplyToScreenName  *string   `json:"in_reply_to_screen_name"`
	User                 *userJSON `json:"user"`
	IsQuoteStatus        bool      `json:"is_quote_status"`
	RetweetCount         int64     `json:"retweet_count"`
	FavoriteCount        int64     `json:"favorite_count"`
	Favorited            bool      `json:"favorited"`
	Retweeted            bool      `json:"retweeted"`
}

func (t *Tweet) UnmarshalJSON(data []byte) error {
	var raw tweetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID == nil:
		return fmt.Errorf("tweet: missing field %q", "id")
	case raw.Text == nil:
		return fmt.Errorf("tweet: missing field %q", "text")
	case raw.User == nil:
		return fmt.Errorf("tweet: missing field %q", "user")
	}

	user, err := raw.User.toUser()
	if err != nil {
		return fmt.Errorf("tweet %d: %w", *raw.ID, err)
	}

	idStr := raw.IDStr
	if idStr == "" {
		idStr = strconv.FormatInt(*raw.ID, 10)
	}

	*t = Tweet{
		id:                   *raw.ID,
		idStr:                idStr,
		text:                 *raw.Text,
		truncated:            raw.Truncated,
		createdAt:            raw.CreatedAt,
		inReplyToStatusID:    raw.InReplyToStatusID,
		inReplyToStatusIDStr: raw.InReplyToStatusIDStr,
		inReplyToUserID:      raw.InReplyToUserID,
		inReplyToUserIDStr:   raw.InReplyToUserIDStr,
		inReplyToScreenName:  raw.InReplyToScreenName,
		user:                 user,
		isQuoteStatus:        raw.IsQuoteStatus,
		retweetCount:         raw.RetweetCount,
		favoriteCount:        raw.FavoriteCount,
		favorited:            raw.Favorited,
		retweeted:            raw.Retweeted,
	}
	return nil
}

func (t Tweet) MarshalJSON() ([]byte, error) {
	id, text := t.id, t.text
	user := t.user.toJSON()
	return json.Marshal(tweetJSON{
		ID:                   &id,
		IDStr:                t.idStr,
		Text:                 &text,
		Truncated:            t.truncated,
		CreatedAt:            t.createdAt,
		InReplyToStatusID:    t.inReplyToStatusID,
		InReplyToStatusIDStr: t.inReplyToStatusIDStr,
		InReplyToUserID:      t.inReplyToUserID,
		InReplyToUserIDStr:   t.inReplyToUserIDStr,
		InReplyToScreenName:  t.inReplyToScreenName,
		User:                 &user,
		IsQuoteStatus:        t.isQuoteStatus,
		RetweetCount:         t.retweetCount,
		FavoriteCount:        t.favoriteCount,
		Favorited:            t.favorited,
		Retweeted:            t.retweeted,
	})
}

func (t Tweet) ID() int64       { return t.id }
func (t Tweet) IDStr() string   { return t.idStr }
func (t Tweet) Text() string    { return t.text }
func (t Tweet) User() User      { return t.user }
func (t Tweet) Truncated() bool { return t.truncated }
func (t Tweet) IsQuote() bool   { return t.isQuoteStatus }
func (t Tweet) Favorited() bool { return t.favorited }
func (t Tweet) Retweeted() bool { return t.retweeted }

func (t Tweet) RetweetCount() int64  { return t.retweetCount }
func (t Tweet) FavoriteCount() int64 { return t.favoriteCount }

// ReplyTo returns the id of the status this tweet replies to.
func (t Tweet) ReplyTo() (int64, bool) {
	if t.inReplyToStatusID == nil {
		return 0, false
	}
	return *t.inReplyToStatusID, true
}

// ReplyToUser returns the id of the author of the status this tweet replies to.
func (t Tweet) ReplyToUser() (int64, bool) {
	if t.inReplyToUserID == nil {
		return 0, false
	}
	return *t.inReplyToUserID, true
}

func (t Tweet) ReplyToScreenName() (string, bool) {
	if t.inReplyToScreenName == nil {
		return "", false
	}
	return *t.inReplyToScreenName, true
}

// CreatedAt parses the created_at field.
func (t Tweet) CreatedAt() (time.Time, error) {
	if t.createdAt == "" {
		return time.Time{}, fmt.Errorf("tweet %d has no created_at", t.id)
	}
	return time.Parse(TimeLayout, t.createdAt)
}

// User is the author profile embedded in a Tweet.
type User struct {
	id                int64
	idStr             string
	name              string
	screenName        string
	location          *string
	description       *string
	url               *string
	followersCount    int64
	friendsCount      int64
	listedCount       int64
	favouritesCount   int64
	statusesCount     int64
	following         *bool
	followRequestSent *bool
}

type userJSON struct {
	ID                int64   `json:"id"`
	IDStr             *string `json:"id_str"`
	Name              string  `json:"name"`
	ScreenName        *string `json:"screen_name"`
	Location          *string `json:"location"`
	Description       *string `json:"description"`
	URL               *string `json:"url"`
	FollowersCount    int64   `json:"followers_count"`
	FriendsCount      int64   `json:"friends_count"`
	ListedCount       int64   `json:"listed_count"`
	FavouritesCount   int64   `json:"favourites_count"`
	StatusesCount     int64   `json:"statuses_count"`
	Following         *bool   `json:"following"`
	FollowRequestSent *bool   `json:"follow_request_sent"`
}

func (u *userJSON) toUser() (User, error) {
	switch {
	case u.IDStr == nil:
		return User{}, fmt.Errorf("user: missing field %q", "id_str")
	case u.ScreenName == nil:
		return User{}, fmt.Errorf("user: missing field %q", "screen_name")
	}
	return User{
		id:                u.ID,
		idStr:             *u.IDStr,
		name:              u.Name,
		screenName:        *u.ScreenName,
		location:          u.Location,
		description:       u.Description,
		url:               u.URL,
		followersCount:    u.FollowersCount,
		friendsCount:      u.FriendsCount,
		listedCount:       u.ListedCount,
		favouritesCount:   u.FavouritesCount,
		statusesCount:     u.StatusesCount,
		following:         u.Following,
		followRequestSent: u.FollowRequestSent,
	}, nil
}

func (u User) toJSON() userJSON {
	idStr, screenName := u.idStr, u.screenName
	return userJSON{
		ID:                u.id,
		IDStr:             &idStr,
		Name:              u.name,
		ScreenName:        &screenName,
		Location:          u.location,
		Description:       u.description,
		URL:               u.url,
		FollowersCount:    u.followersCount,
		FriendsCount:      u.friendsCount,
		ListedCount:       u.listedCount,
		FavouritesCount:   u.favouritesCount,
		StatusesCount:     u.statusesCount,
		Following:         u.following,
		FollowRequestSent: u.followRequestSent,
	}
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	user, err := raw.toUser()
	if err != nil {
		return err
	}
	*u = user
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.toJSON())
}

func (u User) ID() int64          { return u.id }
func (u User) IDStr() string      { return u.idStr }
func (u User) Name() string       { return u.name }
func (u User) ScreenName() string { return u.screenName }

func (u User) FollowersCount() int64  { return u.followersCount }
func (u User) FriendsCount() int64    { return u.friendsCount }
func (u User) ListedCount() int64     { return u.listedCount }
func (u User) FavouritesCount() int64 { return u.favouritesCount }
func (u User) StatusesCount() int64   { return u.statusesCount }

func (u User) Location() (string, bool)    { return optString(u.location) }
func (u User) Description() (string, bool) { return optString(u.description) }
func (u User) URL() (string, bool)         { return optString(u.url) }

func (u User) Following() (bool, bool)         { return optBool(u.following) }
func (u User) FollowRequestSent() (bool, bool) { return optBool(u.followRequestSent) }

func optString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func optBool(b *bool) (bool, bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}

// MediaID references an uploaded file. Pass it to Tweet with WithMediaIDs.
type MediaID uint64

func (m MediaID) String() string {
	return strconv.FormatUint(uint64(m), 10)
}

type mediaResponse struct {
	MediaID *uint64 `json:"media_id"`
}

func (m *mediaResponse) validate() error {
	if m.MediaID == nil {
		return fmt.Errorf("media: missing field %q", "media_id")
	}
	return nil
}

// SearchResult is one page of search/tweets.
type SearchResult struct {
	Statuses []Tweet        `json:"statuses"`
	Metadata SearchMetadata `json:"search_metadata"`
}

func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Statuses *[]Tweet       `json:"statuses"`
		Metadata SearchMetadata `json:"search_metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Statuses == nil {
		return fmt.Errorf("search: missing field %q", "statuses")
	}
	r.Statuses = *raw.Statuses
	r.Metadata = raw.Metadata
	return nil
}

// SearchMetadata describes a search page; MaxID and SinceID are the cursors
// for requesting neighbouring pages.
type SearchMetadata struct {
	CompletedIn float64 `json:"completed_in"`
	MaxID       int64   `json:"max_id"`
	MaxIDStr    string  `json:"max_id_str"`
	Query       string  `json:"query"`
	RefreshURL  string  `json:"refresh_url"`
	NextResults string  `json:"next_results"`
	Count       int     `json:"count"`
	SinceID     int64   `json:"since_id"`
	SinceIDStr  string  `json:"since_id_str"`
}

// ErrorDetail is one entry of an API error payload.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

func (r *ErrorResponse) validate() error {
	if len(r.Errors) == 0 {
		return fmt.Errorf("error response: empty %q", "errors")
	}
	return nil
}
