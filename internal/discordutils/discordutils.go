package discordutils

import (
	"errors"
	"slices"

	"github.com/diamondburned/arikawa/v3/utils/httputil"
)

// Status returns the http status code of a failed discord api request.
func Status(err error) (int, bool) {
	var herr *httputil.HTTPError
	if !errors.As(err, &herr) {
		return 0, false
	}
	return herr.Status, true
}

func IsStatus(err error, codes ...int) bool {
	status, ok := Status(err)
	return ok && slices.Contains(codes, status)
}

// IsStatus4XX reports client errors, usually missing permissions or
// deleted guild entities.
func IsStatus4XX(err error) bool {
	status, ok := Status(err)
	return ok && status/100 == 4
}
