package crawl_test

import (
	"testing"
	"time"

	"github.com/hoanghai81/lps/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDateParam(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("appends the parameter", func(t *testing.T) {
		t.Parallel()

		got, err := crawl.WithDateParam("https://thvl.vn/lich-phat-song/", day)
		require.NoError(t, err)
		assert.Equal(t, "https://thvl.vn/lich-phat-song/?ngay=2024-01-02", got)
	})

	t.Run("replaces an existing value", func(t *testing.T) {
		t.Parallel()

		got, err := crawl.WithDateParam("https://thvl.vn/lps?ngay=2023-12-31&kenh=thvl1", day)
		require.NoError(t, err)
		assert.Contains(t, got, "ngay=2024-01-02")
		assert.Contains(t, got, "kenh=thvl1")
	})

	t.Run("rejects unparseable URLs", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.WithDateParam("http://[::1:bad", day)
		assert.Error(t, err)
	})
}

func TestPageDate(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	t.Run("finds the printed listing date", func(t *testing.T) {
		t.Parallel()

		got, ok := crawl.PageDate("Lịch phát sóng ngày 02/01/2024 kênh THVL1", loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), got)
	})

	t.Run("skips impossible dates", func(t *testing.T) {
		t.Parallel()

		got, ok := crawl.PageDate("cập nhật 45/13/2024, phát ngày 03/01/2024", loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, loc), got)
	})

	t.Run("reports absence", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.PageDate("không có ngày nào ở đây", loc)
		assert.False(t, ok)
	})
}
