// Package objekt looks up the Objekt NFTs a Cosmo user holds: the nickname is
// resolved to a wallet through the Cosmo API and the wallet's tokens are
// listed through Magic Eden.
package objekt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

const (
	DefaultCosmoURL     = "https://api.cosmo.fans"
	DefaultMagicEdenURL = "https://api-mainnet.magiceden.dev"

	pageSize = 20
)

type Client struct {
	cosmoURL     string
	magicEdenURL string
	client       *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 10s.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

func NewClient(cosmoURL, magicEdenURL string, opts ...Option) *Client {
	if cosmoURL == "" {
		cosmoURL = DefaultCosmoURL
	}
	if magicEdenURL == "" {
		magicEdenURL = DefaultMagicEdenURL
	}
	c := &Client{
		cosmoURL:     strings.TrimRight(cosmoURL, "/"),
		magicEdenURL: strings.TrimRight(magicEdenURL, "/"),
		client:       &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type cosmoUser struct {
	Profile struct {
		Address string `json:"address"`
	} `json:"profile"`
}

type tokenPage struct {
	Tokens []struct {
		Token struct {
			TokenID string `json:"tokenId"`
			Name    string `json:"name"`
			Image   string `json:"image"`
		} `json:"token"`
	} `json:"tokens"`
	Continuation string `json:"continuation"`
}

// Search returns one page of tokens held by nickname. Entries are mapped
// as-is; filtering is left to the caller.
func (c *Client) Search(ctx context.Context, nickname, continuation string) (*ports.ObjektPage, error) {
	address, err := c.walletAddress(ctx, nickname)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageSize))
	if continuation != "" {
		query.Set("continuation", continuation)
	}
	endpoint := fmt.Sprintf("%s/v3/rtp/abstract/users/%s/tokens/v7?%s", c.magicEdenURL, url.PathEscape(address), query.Encode())

	var page tokenPage
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	out := &ports.ObjektPage{
		Objekts:      make([]domain.ObjektNFT, 0, len(page.Tokens)),
		Continuation: page.Continuation,
	}
	for _, t := range page.Tokens {
		out.Objekts = append(out.Objekts, domain.ObjektNFT{
			ID:    t.Token.TokenID,
			Name:  t.Token.Name,
			Image: t.Token.Image,
		})
	}
	return out, nil
}

func (c *Client) walletAddress(ctx context.Context, nickname string) (string, error) {
	endpoint := fmt.Sprintf("%s/user/v1/by-nickname/%s", c.cosmoURL, url.PathEscape(nickname))

	var user cosmoUser
	if err := c.getJSON(ctx, endpoint, &user); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return "", domain.ErrObjektOwnerNotFound
		}
		return "", fmt.Errorf("resolve wallet: %w", err)
	}
	if user.Profile.Address == "" {
		return "", domain.ErrObjektOwnerNotFound
	}
	return user.Profile.Address, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ ports.ObjektSource = (*Client)(nil)
