package admin

import "errors"

var ErrForbidden = errors.New("admin role required")
