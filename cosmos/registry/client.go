package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/tessellated-io/walletbridge/log"
)

// ChainRegistryClient reads chain and asset metadata from a hosted chain registry.
type ChainRegistryClient interface {
	ChainInfo(ctx context.Context, chainName string) (*ChainInfo, error)
	AssetList(ctx context.Context, chainName string) (*AssetList, error)
}

// Default implementation. Registry data is served over plain HTTP, so transient
// failures are retried at the request level.
type chainRegistryClient struct {
	chainRegistryBaseUrl string

	httpClient *http.Client

	attempts retry.Option
	delay    retry.Option

	log *log.Logger
}

var _ ChainRegistryClient = (*chainRegistryClient)(nil)

// NewChainRegistryClient makes a new default registry client.
func NewChainRegistryClient(log *log.Logger, chainRegistryBaseUrl string, attempts uint, delay time.Duration) *chainRegistryClient {
	return &chainRegistryClient{
		chainRegistryBaseUrl: chainRegistryBaseUrl,

		httpClient: &http.Client{},

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		log: log,
	}
}

// ChainRegistryClient interface

func (rc *chainRegistryClient) ChainInfo(ctx context.Context, chainName string) (*ChainInfo, error) {
	url := fmt.Sprintf("%s/%s/chain.json", rc.chainRegistryBaseUrl, chainName)

	bytes, err := rc.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	return parseChainResponse(bytes)
}

func (rc *chainRegistryClient) AssetList(ctx context.Context, chainName string) (*AssetList, error) {
	url := fmt.Sprintf("%s/%s/assetlist.json", rc.chainRegistryBaseUrl, chainName)

	bytes, err := rc.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	return parseAssetListResponse(bytes)
}

// Private helpers

func (rc *chainRegistryClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	var data []byte

	err := retry.Do(func() error {
		requestErr := func() error {
			rc.log.Debug("making GET request to url", "url", url)

			request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
			if err != nil {
				return err
			}
			request.Header.Set("Content-Type", "application/json")

			resp, err := rc.httpClient.Do(request)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, readErr := io.ReadAll(resp.Body)
				if readErr == nil {
					rc.log.Debug("received bad response from chain registry", "response", string(body), "status_code", resp.StatusCode)
				}
				return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
			}

			data, err = io.ReadAll(resp.Body)
			return err
		}()
		if requestErr != nil {
			rc.log.Error("failed call in registry client, will retry", "error", requestErr.Error(), "url", url)
		}
		return requestErr
	}, rc.attempts, rc.delay, retry.Context(ctx), retry.LastErrorOnly(true))
	if err != nil {
		return nil, err
	}

	return data, nil
}
