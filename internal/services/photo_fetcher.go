package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/dwellcheck/dwellcheck-backend/internal/constants"
)

// PhotoFetcher retrieves one photo binary for PDF embedding. Behind an
// interface so tests can swap the HTTP client out.
type PhotoFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type restyPhotoFetcher struct {
	client *resty.Client
}

// NewPhotoFetcher returns the production fetcher. No automatic
// retries: a failed photo is skipped by the pipeline, never retried.
func NewPhotoFetcher() PhotoFetcher {
	return &restyPhotoFetcher{
		client: resty.New().
			SetTimeout(constants.PhotoFetchTimeout).
			SetRetryCount(0),
	}
}

func (f *restyPhotoFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("photo fetch: unexpected status %d for %s", resp.StatusCode(), url)
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("photo fetch: empty body for %s", url)
	}
	return body, nil
}
