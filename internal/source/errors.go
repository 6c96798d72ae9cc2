package source

import "errors"

var (
	ErrInvalidSlug             = errors.New("invalid slug format, expected 'owner/name'")
	ErrIncorrectParameterOwner = errors.New("incorrect parameter \"owner\"")
	ErrIncorrectParameterRepo  = errors.New("incorrect parameter \"repo\"")
	ErrAssetNotFound           = errors.New("asset not found")
	// ErrRateLimited wraps errors returned when the registry throttled us.
	ErrRateLimited = errors.New("registry rate limit exceeded")
)
