package middleware

import (
	"errors"

	"github.com/meysam81/oneoffctl/internal/errs"
	"github.com/meysam81/oneoffctl/internal/logger"
)

var ErrLogged = errors.New("already logged")

// UsageError logs the catalogue message for code and returns ErrLogged so
// main does not print it a second time.
func UsageError(code errs.Code, a ...any) error {
	msg := errs.Msg(code, a...)
	logger.LogError("%s", msg)
	return ErrLogged
}
