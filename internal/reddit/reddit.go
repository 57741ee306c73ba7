package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"persona-chat/internal/config"
)

// Fetcher retrieves a user's newest public comments and posts from the
// Reddit API using the app-only OAuth2 flow.
type Fetcher struct {
	clientID     string
	clientSecret string
	userAgent    string
	baseURL      string
	tokenURL     string
	maxItems     int
}

func NewFetcher(cfg *config.RedditConfig) *Fetcher {
	return &Fetcher{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
		baseURL:      cfg.BaseURL,
		tokenURL:     cfg.TokenURL,
		maxItems:     cfg.MaxItems,
	}
}

// listing is the subset of the Reddit listing envelope the pipeline needs.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Body     string `json:"body"`
				Title    string `json:"title"`
				SelfText string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// UserContent returns the user's comments (bodies only) and posts
// (title + "\n" + body), each newest-first and capped at the configured
// limit. Any failure reaching Reddit is logged and reported as two empty
// lists; callers cannot distinguish an outage from a user with no content.
func (f *Fetcher) UserContent(ctx context.Context, username string) ([]string, []string) {
	comments, posts, err := f.fetch(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Error retrieving reddit data")
		return []string{}, []string{}
	}
	return comments, posts
}

func (f *Fetcher) fetch(ctx context.Context, username string) ([]string, []string, error) {
	// A fresh authenticated session per call; the token is not reused.
	conf := &clientcredentials.Config{
		ClientID:     f.clientID,
		ClientSecret: f.clientSecret,
		TokenURL:     f.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	client := conf.Client(ctx)
	client.Timeout = 30 * time.Second

	commentsURL := fmt.Sprintf("%s/user/%s/comments?limit=%d&sort=new", f.baseURL, url.PathEscape(username), f.maxItems)
	cl, err := f.listing(ctx, client, commentsURL)
	if err != nil {
		return nil, nil, err
	}
	comments := make([]string, 0, len(cl.Data.Children))
	for _, child := range cl.Data.Children {
		comments = append(comments, child.Data.Body)
	}

	postsURL := fmt.Sprintf("%s/user/%s/submitted?limit=%d&sort=new", f.baseURL, url.PathEscape(username), f.maxItems)
	pl, err := f.listing(ctx, client, postsURL)
	if err != nil {
		return nil, nil, err
	}
	posts := make([]string, 0, len(pl.Data.Children))
	for _, child := range pl.Data.Children {
		posts = append(posts, child.Data.Title+"\n"+child.Data.SelfText)
	}

	return comments, posts, nil
}

func (f *Fetcher) listing(ctx context.Context, client *http.Client, rawURL string) (*listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed: %d, %s", resp.StatusCode, string(body))
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
