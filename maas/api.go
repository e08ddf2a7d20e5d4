/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package maas

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comcast/maasaudit/config"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/nrednav/cuid2"
)

var (
	ErrInvalidAPIKey = errors.New("invalid MAAS API key")

	nonce, _ = cuid2.Init(
		cuid2.WithLength(16),
	)
)

// APIKey is the three part MAAS credential "consumer:token:secret".
type APIKey struct {
	ConsumerKey string
	Token       string
	Secret      string
}

func ParseAPIKey(s string) (APIKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return APIKey{}, fmt.Errorf("%w: expected consumer:token:secret", ErrInvalidAPIKey)
	}
	return APIKey{
		ConsumerKey: parts[0],
		Token:       parts[1],
		Secret:      parts[2],
	}, nil
}

// authorization builds an OAuth 1.0 PLAINTEXT header, the only signature
// method the MAAS API accepts for CLI style keys.
func (k APIKey) authorization() string {
	return fmt.Sprintf(`OAuth oauth_version="1.0", oauth_signature_method="PLAINTEXT", `+
		`oauth_consumer_key=%q, oauth_token=%q, oauth_signature="&%s", `+
		`oauth_nonce=%q, oauth_timestamp="%d"`,
		k.ConsumerKey, k.Token, url.QueryEscape(k.Secret), nonce(), time.Now().Unix())
}

// APIClient talks to the MAAS REST API directly instead of shelling out
// to the CLI. It lists the same machine records `maas <profile> machines read`
// returns.
type APIClient struct {
	endpoint *url.URL
	key      APIKey
	client   *retryablehttp.Client
}

func NewAPIClient(endpoint, key string) (*APIClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error parsing MAAS endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("MAAS endpoint %q is missing scheme or host", endpoint)
	}

	k, err := ParseAPIKey(key)
	if err != nil {
		return nil, err
	}

	return &APIClient{
		endpoint: u,
		key:      k,
		client:   newHTTPClient(),
	}, nil
}

func (c *APIClient) ListMachines(ctx context.Context, f Filter) ([]Machine, error) {
	uri := *c.endpoint
	uri.Path = strings.TrimSuffix(uri.Path, "/") + "/api/2.0/machines/"

	query := uri.Query()
	if f.Tag != "" {
		query.Set("tags", f.Tag)
	}
	if f.Hostname != "" {
		query.Set("hostname", f.Hostname)
	}
	uri.RawQuery = query.Encode()

	req, err := retryablehttp.NewRequest(http.MethodGet, uri.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build retryable request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", c.key.authorization())
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling MAAS API: %w", err)
	}
	defer emptyAndCloseBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MAAS API returned HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return decodeMachines(body)
}

// Required for a proper cleanup of the response body to have correctly
// working keep-alive connections.
func emptyAndCloseBody(resp *http.Response) {
	if resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}

func newHTTPClient() *retryablehttp.Client {
	tr := &http.Transport{
		Dial:                  (&net.Dialer{Timeout: 3 * time.Second}).Dial,
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          1,
		MaxConnsPerHost:       1,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.GetConfig().SSLVerify,
			Renegotiation:      tls.RenegotiateOnceAsClient,
		},
		TLSHandshakeTimeout: 10 * time.Second,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.CheckRetry = retryablehttp.ErrorPropagatedRetryPolicy
	retryClient.HTTPClient.Transport = tr
	retryClient.HTTPClient.Timeout = 30 * time.Second
	retryClient.Logger = nil
	retryClient.RetryWaitMin = 2 * time.Second
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.RetryMax = 2

	return retryClient
}
