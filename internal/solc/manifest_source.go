package solc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/NilFoundation/solforge/common"
	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/common/version"
)

var errPermanentHttp = errors.New("permanent http error")

// HttpManifestSource downloads list.json from a solc binaries mirror.
type HttpManifestSource struct {
	url    string
	client *http.Client
	retry  common.RetryRunner
	logger logging.Logger
}

var _ ManifestSource = (*HttpManifestSource)(nil)

func NewHttpManifestSource(url string, client *http.Client, logger logging.Logger) *HttpManifestSource {
	if url == "" {
		url = DefaultManifestUrl()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpManifestSource{
		url:    url,
		client: client,
		retry:  common.NewRetryRunner(common.DefaultFetchRetryConfig(errPermanentHttp), logger),
		logger: logger,
	}
}

func (s *HttpManifestSource) FetchManifest(ctx context.Context) (*Manifest, error) {
	var manifest Manifest
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		return s.fetch(ctx, &manifest)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch compiler manifest %s: %w", s.url, err)
	}
	return &manifest, nil
}

func (s *HttpManifestSource) fetch(ctx context.Context, dst *Manifest) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errPermanentHttp, err)
	}
	req.Header.Set("User-Agent", version.BuildClientVersion("solforge"))

	s.logger.Debug().Str(logging.FieldUrl, s.url).Msg("Fetching compiler manifest")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("%w: %w", errPermanentHttp, err)
		}
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: malformed manifest: %w", errPermanentHttp, err)
	}
	return nil
}
