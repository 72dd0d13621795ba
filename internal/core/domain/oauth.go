package domain

import "errors"

var ErrOAuthConfig = errors.New("oauth client credentials not configured")
var ErrOAuthExchange = errors.New("oauth code exchange failed")
