package htmltomarkdown_test

import (
	"testing"

	"github.com/hoanghai81/lps/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeExtractor(t *testing.T) {
	t.Parallel()

	e := htmltomarkdown.NewPipeExtractor()

	t.Run("reads literal pipe-delimited text", func(t *testing.T) {
		t.Parallel()

		text := "Lịch phát sóng\n" +
			"06:00 | Thời sự\n" +
			"07:30 | Phim truyện | Tập 3\n" +
			"09:00 | Ca nhạc\n"

		entries, err := e.Extract(text)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "06:00", entries[0].TimeText)
		assert.Equal(t, "Thời sự", entries[0].TitleText)
		assert.Equal(t, "Tập 3", entries[1].DescText)
	})

	t.Run("reads table markup through the Markdown rendering", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><table>
			<tr><th>Giờ</th><th>Chương trình</th></tr>
			<tr><td>05:30</td><td>Chào ngày mới</td></tr>
			<tr><td>06:00</td><td>Thời sự</td></tr>
		</table></body></html>`

		entries, err := e.Extract(html)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Chào ngày mới", entries[0].TitleText)
		assert.Equal(t, "Thời sự", entries[1].TitleText)
	})

	t.Run("separator rules are not rows", func(t *testing.T) {
		t.Parallel()

		text := "| Giờ | Chương trình |\n" +
			"| --- | :--- |\n" +
			"| 08:00 | Bản tin |\n"

		entries, err := e.Extract(text)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Bản tin", entries[0].TitleText)
	})

	t.Run("picks the pipe block with time tokens over menus", func(t *testing.T) {
		t.Parallel()

		text := "Trang chủ | Giới thiệu | Liên hệ\n" +
			"\n" +
			"19:45 | Phim cuối ngày\n" +
			"21:00 | Thế giới đó đây\n"

		entries, err := e.Extract(text)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Phim cuối ngày", entries[0].TitleText)
	})

	t.Run("no pipe rows yields no entries", func(t *testing.T) {
		t.Parallel()

		entries, err := e.Extract("Hôm nay không có lịch phát sóng.")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := e.Extract("   ")
		assert.Error(t, err)
	})
}
