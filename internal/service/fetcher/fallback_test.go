package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/service/fetcher"
	"github.com/darkkaiser/price-scraper/internal/service/fetcher/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFallbackFetcher_Fetch(t *testing.T) {
	t.Parallel()

	const url = "https://www.dohome.co.th/th/product/a-10026550"
	okPage := &fetcher.Page{URL: url, HTML: "<html></html>", StatusCode: http.StatusOK}

	tests := []struct {
		name           string
		primaryErr     error
		secondaryErr   error
		expectFallback bool
		wantErrType    apperrors.ErrorType
	}{
		{
			name:           "기본 수집기 성공",
			expectFallback: false,
		},
		{
			name:           "브라우저 실행 실패 시 대체 수집기 사용",
			primaryErr:     fetcher.NewErrBrowserUnavailable(errors.New("exec: not found")),
			expectFallback: true,
		},
		{
			name:           "잘못된 URL은 대체 수집기를 시도하지 않음",
			primaryErr:     fetcher.NewErrInvalidURL(url, "test"),
			expectFallback: false,
			wantErrType:    apperrors.InvalidInput,
		},
		{
			name:           "두 수집기 모두 실패",
			primaryErr:     apperrors.New(apperrors.Unavailable, "primary"),
			secondaryErr:   fetcher.NewErrHTTPStatus(url, http.StatusServiceUnavailable),
			expectFallback: true,
			wantErrType:    apperrors.Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := mocks.NewMockFetcher()
			secondary := mocks.NewMockFetcher()

			if tt.primaryErr != nil {
				primary.On("Fetch", mock.Anything, url).Return(nil, tt.primaryErr).Once()
			} else {
				primary.On("Fetch", mock.Anything, url).Return(okPage, nil).Once()
			}
			if tt.expectFallback {
				if tt.secondaryErr != nil {
					secondary.On("Fetch", mock.Anything, url).Return(nil, tt.secondaryErr).Once()
				} else {
					secondary.On("Fetch", mock.Anything, url).Return(okPage, nil).Once()
				}
			}

			page, err := fetcher.NewFallbackFetcher(primary, secondary).Fetch(context.Background(), url)

			if tt.wantErrType != apperrors.Unknown {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantErrType), "%v", err)
				assert.Nil(t, page)
			} else {
				require.NoError(t, err)
				assert.Equal(t, okPage, page)
			}

			primary.AssertExpectations(t)
			secondary.AssertExpectations(t)
			if !tt.expectFallback {
				secondary.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestFallbackFetcher_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := mocks.NewMockFetcher()
	secondary := mocks.NewMockFetcher()
	primary.On("Fetch", mock.Anything, "https://example.com").Return(nil, context.Canceled)

	_, err := fetcher.NewFallbackFetcher(primary, secondary).Fetch(ctx, "https://example.com")
	require.ErrorIs(t, err, context.Canceled)
	secondary.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestFallbackFetcher_Close(t *testing.T) {
	t.Parallel()

	primary := mocks.NewMockFetcher()
	secondary := mocks.NewMockFetcher()
	primary.On("Close").Return(errors.New("browser close failed"))
	secondary.On("Close").Return(nil)

	err := fetcher.NewFallbackFetcher(primary, secondary).Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser close failed")
	primary.AssertExpectations(t)
	secondary.AssertExpectations(t)
}

func TestFallbackFetcher_CloseBoth(t *testing.T) {
	t.Parallel()

	primary := mocks.NewStaticFetcher()
	secondary := mocks.NewStaticFetcher()

	require.NoError(t, fetcher.NewFallbackFetcher(primary, secondary).Close())
	assert.True(t, primary.Closed())
	assert.True(t, secondary.Closed())
}
