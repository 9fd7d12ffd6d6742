package storage

import (
	"context"
	"testing"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("기본값은 파일 저장소", func(t *testing.T) {
		s, err := New(ctx, Config{Dir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &FileStore{}, s)
	})

	t.Run("가격 이력 최대 건수 전달", func(t *testing.T) {
		s, err := New(ctx, Config{Driver: DriverFile, Dir: t.TempDir(), MaxHistory: 7})
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, 7, s.(*FileStore).maxHistory)
	})

	t.Run("가격 이력 0은 기본값", func(t *testing.T) {
		s, err := New(ctx, Config{Dir: t.TempDir()})
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, defaultMaxHistory, s.(*FileStore).maxHistory)
	})

	t.Run("postgres는 dsn 필요", func(t *testing.T) {
		_, err := New(ctx, Config{Driver: DriverPostgres})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("지원하지 않는 드라이버", func(t *testing.T) {
		_, err := New(ctx, Config{Driver: "mongodb"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "mongodb")
	})
}
