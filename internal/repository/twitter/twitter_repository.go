package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"partyPredictor/domain"
	"partyPredictor/pkg/logger"
	"partyPredictor/pkg/metrics"

	"github.com/dghubble/oauth1"
	"golang.org/x/time/rate"
)

const timelinePath = "/1.1/statuses/user_timeline.json"

type TwitterConfig struct {
	BaseUrl           string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	Pages             int
	PagesPerSecond    float64
	Burst             int
	Timeout           time.Duration
}

type TwitterRepository struct {
	twitterConfig TwitterConfig
	client        *http.Client
	limiter       *rate.Limiter
}

func NewTwitterRepository(cfg TwitterConfig) *TwitterRepository {
	if cfg.Pages <= 0 {
		cfg.Pages = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Pages
	}
	limit := rate.Inf
	if cfg.PagesPerSecond > 0 {
		limit = rate.Limit(cfg.PagesPerSecond)
	}

	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)
	client := oauthCfg.Client(oauth1.NoContext, token)
	client.Timeout = cfg.Timeout

	return &TwitterRepository{
		twitterConfig: cfg,
		client:        client,
		limiter:       rate.NewLimiter(limit, cfg.Burst),
	}
}

type tweet struct {
	CreatedAt string  `json:"created_at"`
	FullText  *string `json:"full_text"`
	User      *struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

// FetchTimeline walks the configured number of timeline pages for handle.
// Pages and items that fail are logged and skipped, and the walk stops early
// when the shared page limiter cannot serve the next page before ctx's
// deadline, so the result may be partial or empty. Only a cancelled context
// returns an error.
func (r *TwitterRepository) FetchTimeline(ctx context.Context, handle string) ([]domain.Post, error) {
	posts := []domain.Post{}

	for page := 1; page <= r.twitterConfig.Pages; page++ {
		if err := r.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("context error: %w", ctxErr)
			}
			// The limiter is shared by every request; a wait that cannot
			// finish before the deadline ends the walk with what we have.
			logger.Warn("Stopping timeline walk, page budget exhausted",
				"handle", handle,
				"page", page,
				"posts", len(posts),
				"error", err,
			)
			metrics.FeedSkippedTotal.WithLabelValues("rate_limit").Add(float64(r.twitterConfig.Pages - page + 1))
			break
		}

		items, err := r.fetchPage(ctx, handle, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("context error: %w", ctxErr)
			}
			logger.Warn("Skipping timeline page", "handle", handle, "page", page, "error", err)
			metrics.FeedSkippedTotal.WithLabelValues("page").Inc()
			continue
		}

		for _, raw := range items {
			post, err := decodeTweet(raw)
			if err != nil {
				logger.Warn("Skipping timeline item", "handle", handle, "page", page, "error", err)
				metrics.FeedSkippedTotal.WithLabelValues("item").Inc()
				continue
			}
			posts = append(posts, post)
		}
	}

	metrics.FeedPostsFetched.Observe(float64(len(posts)))
	return posts, nil
}

func (r *TwitterRepository) fetchPage(ctx context.Context, handle string, page int) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("screen_name", handle)
	query.Set("page", strconv.Itoa(page))
	query.Set("tweet_mode", "extended")

	endpoint := r.twitterConfig.BaseUrl + timelinePath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("timeline api returned status %d", res.StatusCode)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode timeline page: %w", err)
	}

	return items, nil
}

func decodeTweet(raw json.RawMessage) (domain.Post, error) {
	var t tweet
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Post{}, fmt.Errorf("failed to decode tweet: %w", err)
	}
	if t.FullText == nil {
		return domain.Post{}, errors.New("tweet has no full_text")
	}
	if t.User == nil || t.User.ScreenName == "" {
		return domain.Post{}, errors.New("tweet has no user screen_name")
	}

	createdAt, err := time.Parse(time.RubyDate, t.CreatedAt)
	if err != nil {
		logger.Warn("Keeping tweet with unparseable created_at", "created_at", t.CreatedAt, "error", err)
		createdAt = time.Time{}
	}

	return domain.Post{
		CreatedAt:  createdAt,
		ScreenName: t.User.ScreenName,
		FullText:   *t.FullText,
	}, nil
}
