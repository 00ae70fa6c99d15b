package ingest

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nigela/internal/config"
)

// Post is one recipe entry in the household's archive blog.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	UpdatedAt string `json:"updated_at"`
}

// BlogClient talks to the recipe archive: clipped recipes are published to
// it, and the whole archive can be replayed back into the catalogue.
type BlogClient interface {
	FetchPosts() ([]Post, error)
	CreatePost(title, html string, publish bool) (*Post, error)
}

// blogClient speaks the Ghost-compatible v3 content and admin APIs.
type blogClient struct {
	httpClient *http.Client
	baseURL    string
	contentKey string
	adminKey   string
}

// NewBlogClient creates a client for the configured archive blog.
func NewBlogClient(cfg *config.Config) BlogClient {
	return &blogClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BlogURL, "/"),
		contentKey: cfg.BlogContentKey,
		adminKey:   cfg.BlogAdminKey,
	}
}

const postsPageSize = 50

type postsPage struct {
	Posts []Post `json:"posts"`
	Meta  struct {
		Pagination struct {
			Page  int `json:"page"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

// FetchPosts walks the content API page by page and returns every post with
// a body worth extracting. Title-only stubs are dropped here so the
// extraction loop never spends a model call on them.
func (c *blogClient) FetchPosts() ([]Post, error) {
	var recipes []Post
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/ghost/api/v3/content/posts/?key=%s&fields=id,title,html,updated_at&limit=%d&page=%d",
			c.baseURL, c.contentKey, postsPageSize, page)

		resp, err := c.httpClient.Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts page %d: %w", page, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("content api error: status %d", resp.StatusCode)
		}

		var pg postsPage
		err = json.NewDecoder(resp.Body).Decode(&pg)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode posts page %d: %w", page, err)
		}

		for _, p := range pg.Posts {
			if strings.TrimSpace(p.HTML) == "" {
				continue
			}
			recipes = append(recipes, p)
		}

		if pg.Meta.Pagination.Pages == 0 || page >= pg.Meta.Pagination.Pages {
			return recipes, nil
		}
	}
}

// CreatePost archives one clipped recipe through the admin API, published
// immediately or kept as a draft.
func (c *blogClient) CreatePost(title, html string, publish bool) (*Post, error) {
	token, err := c.adminToken()
	if err != nil {
		return nil, err
	}

	status := "draft"
	if publish {
		status = "published"
	}
	payload, err := json.Marshal(map[string][]map[string]string{
		"posts": {{"title": title, "html": html, "status": status}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}

	url := c.baseURL + "/ghost/api/v3/admin/posts/?source=html"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin api error: status %d", resp.StatusCode)
	}

	var created postsPage
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode created post: %w", err)
	}
	if len(created.Posts) == 0 {
		return nil, fmt.Errorf("admin api returned no post")
	}
	return &created.Posts[0], nil
}

// adminToken builds the short-lived token the admin API expects. The admin
// key is the "id:hexsecret" pair Ghost-compatible blogs issue.
func (c *blogClient) adminToken() (string, error) {
	id, secretHex, ok := strings.Cut(c.adminKey, ":")
	if !ok {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode admin key secret: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/v3/admin/",
	})
	token.Header["kid"] = id
	return token.SignedString(secret)
}
