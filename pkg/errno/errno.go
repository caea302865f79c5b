package errno

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCode doubles as the HTTP status of the response envelope.
const (
	SuccessCode        = http.StatusOK
	CreatedCode        = http.StatusCreated
	ValidationErrCode  = http.StatusBadRequest
	AuthErrCode        = http.StatusUnauthorized
	ForbiddenErrCode   = http.StatusForbidden
	NotFoundErrCode    = http.StatusNotFound
	ConflictErrCode    = http.StatusConflict
	TooManyReqErrCode  = http.StatusTooManyRequests
	ServiceErrCode     = http.StatusInternalServerError
	UploadErrCode      = http.StatusInternalServerError
	internalErrMessage = "Internal server error"
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is matches on the code alone so callers can test errors.Is(err, errno.NotFoundErr)
// against an error carrying a customized message.
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

var (
	Success           = NewErrNo(SuccessCode, "Success")
	ValidationErr     = NewErrNo(ValidationErrCode, "Invalid request")
	AuthenticationErr = NewErrNo(AuthErrCode, "Unauthorized request")
	TokenInvalidErr   = NewErrNo(AuthErrCode, "Invalid or expired token")
	ForbiddenErr      = NewErrNo(ForbiddenErrCode, "You are not authorized to perform this action")
	NotFoundErr       = NewErrNo(NotFoundErrCode, "Resource not found")
	ConflictErr       = NewErrNo(ConflictErrCode, "Resource already exists")
	TooManyRequestErr = NewErrNo(TooManyReqErrCode, "Too many requests")
	UploadErr         = NewErrNo(UploadErrCode, "File upload failed")
	ServiceErr        = NewErrNo(ServiceErrCode, internalErrMessage)
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr
}
