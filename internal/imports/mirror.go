package imports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/NilFoundation/solforge/common"
	"github.com/NilFoundation/solforge/common/logging"
	"github.com/NilFoundation/solforge/common/version"
)

const (
	DefaultMirrorUrl         = "https://cdn.jsdelivr.net/npm/{{.Package}}@{{.Version}}/{{.Path}}"
	DefaultDependencyVersion = "5.0.2"

	maxSourceSize = 8 << 20
)

var errPermanentHttp = errors.New("permanent http error")

// HttpMirrorFetcher downloads dependency sources from an npm CDN. Only paths rooted in the
// namespace are served; the namespace without its trailing slash is the npm package name.
type HttpMirrorFetcher struct {
	urlTemplate string
	namespace   string
	version     string
	client      *http.Client
	retry       common.RetryRunner
	logger      logging.Logger
}

var _ Fetcher = (*HttpMirrorFetcher)(nil)

func NewHttpMirrorFetcher(
	urlTemplate, namespace, version string, client *http.Client, logger logging.Logger,
) *HttpMirrorFetcher {
	if urlTemplate == "" {
		urlTemplate = DefaultMirrorUrl
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if version == "" {
		version = DefaultDependencyVersion
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpMirrorFetcher{
		urlTemplate: urlTemplate,
		namespace:   namespace,
		version:     version,
		client:      client,
		retry:       common.NewRetryRunner(common.DefaultFetchRetryConfig(errPermanentHttp), logger),
		logger:      logger,
	}
}

// Url returns the mirror address of a namespaced path.
func (f *HttpMirrorFetcher) Url(path string) (string, error) {
	return common.ParseTemplate(f.urlTemplate, map[string]any{
		"Package": strings.TrimSuffix(f.namespace, "/"),
		"Version": f.version,
		"Path":    strings.TrimPrefix(path, f.namespace),
	})
}

func (f *HttpMirrorFetcher) Fetch(ctx context.Context, _, path string) (string, error) {
	if !InNamespace(f.namespace, path) {
		return "", ErrSourceNotFound
	}
	url, err := f.Url(path)
	if err != nil {
		return "", err
	}

	var text string
	err = f.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		text, err = f.fetch(ctx, url)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, url)
		}
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return text, nil
}

func (f *HttpMirrorFetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errPermanentHttp, err)
	}
	req.Header.Set("User-Agent", version.BuildClientVersion("solforge"))

	f.logger.Debug().Str(logging.FieldUrl, url).Msg("Fetching dependency source")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %w", errPermanentHttp, ErrSourceNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: unexpected status %s", errPermanentHttp, resp.Status)
	default:
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
