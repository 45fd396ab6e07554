package service

import (
	"errors"

	"roblox-pass-proxy/internal/upstream"
	"roblox-pass-proxy/pkg/apierror"
)

// translate maps pipeline failures onto the API error taxonomy. Upstream
// HTTP failures become 502 Bad Gateway; typed API errors pass through
// unchanged; anything else (network, parse, bugs) is an opaque 500. Callers
// never see raw upstream bodies or stack traces, only the short message.
func translate(err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *upstream.HTTPError
	if errors.As(err, &httpErr) {
		return apierror.BadGateway("upstream error: " + httpErr.Error())
	}

	return apierror.InternalError("server error: " + err.Error())
}
