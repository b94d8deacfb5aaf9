package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecolemusique/backoffice/internal/utils"
)

var classified = []error{utils.ErrNotFound, utils.ErrConflict, utils.ErrReference, utils.ErrInvalidInput}

// storeError classifies a repository or identity failure. Callers handle
// ErrNotFound themselves when they have a better message for it.
//
// Client-side failures (conflict, bad reference, invalid input) carry the
// store's or auth service's own message so the admin sees what to fix.
// Anything else keeps msg and the cause stays in the logs.
func storeError(op, msg string, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, msg, err)
	case errors.Is(err, utils.ErrConflict):
		return utils.E(utils.CodeConflict, op, causeText(err), fmt.Errorf("%s: %w", msg, err))
	case errors.Is(err, utils.ErrReference), errors.Is(err, utils.ErrInvalidInput):
		return utils.E(utils.CodeInvalidArgument, op, causeText(err), fmt.Errorf("%s: %w", msg, err))
	default:
		return utils.E(utils.CodeInternal, op, msg, err)
	}
}

// causeText is the message of the underlying error without the
// classification sentinel in front of it.
func causeText(err error) string {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if !isClassified(e) {
				return e.Error()
			}
		}
	}
	text := err.Error()
	for _, s := range classified {
		text = strings.TrimPrefix(text, s.Error()+": ")
	}
	return text
}

func isClassified(err error) bool {
	for _, s := range classified {
		if err == s {
			return true
		}
	}
	return false
}
