package errors

import "net/http"

var ErrInvalidID = &Exception{
	Message:    "id must be a positive integer",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidFilter = &Exception{
	Message:    "invalid filter value",
	StatusCode: http.StatusBadRequest,
}
