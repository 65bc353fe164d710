package crawl

import (
	"net/url"
	"regexp"
	"time"

	"github.com/hoanghai81/lps"
)

// dateInText matches the dd/mm/yyyy dates broadcaster pages print in
// their listing headers.
var dateInText = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)

// WithDateParam returns rawURL with its ngay query parameter set to day,
// formatted YYYY-MM-DD. Schedule pages address their day through this
// parameter; an existing value is replaced.
func WithDateParam(rawURL string, day time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", lps.Errorf(lps.EINVALID, "invalid channel URL %q: %v", rawURL, err)
	}
	q := u.Query()
	q.Set("ngay", day.Format("2006-01-02"))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// PageDate returns the first dd/mm/yyyy date printed in the page text, at
// midnight in loc. Pages sometimes serve a listing dated behind the
// requested day; the printed date is the authoritative anchor for the
// clock sequence.
func PageDate(text string, loc *time.Location) (time.Time, bool) {
	for _, m := range dateInText.FindAllStringSubmatch(text, -1) {
		day := atoi(m[1])
		month := atoi(m[2])
		year := atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
