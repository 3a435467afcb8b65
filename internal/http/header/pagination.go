package header

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	TotalCountHeader = "X-Total-Count"
	LinkHeader       = "Link"
)

// Pagination returns the Link and X-Total-Count headers for a page of a listing.
// requestURL is the URL of the current request; its query parameters are kept and
// only page and size are rewritten for each link. prev is omitted on the first page
// and next on the last one.
func Pagination(requestURL *url.URL, page, size int, total int64) map[string]string {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}

	links := make([]string, 0, 4)
	if page < totalPages-1 {
		links = append(links, link(requestURL, page+1, size, "next"))
	}
	if page > 0 {
		links = append(links, link(requestURL, page-1, size, "prev"))
	}
	links = append(links,
		link(requestURL, lastPage, size, "last"),
		link(requestURL, 0, size, "first"),
	)

	return map[string]string{
		TotalCountHeader: strconv.FormatInt(total, 10),
		LinkHeader:       strings.Join(links, ","),
	}
}

func link(base *url.URL, page, size int, rel string) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
}
