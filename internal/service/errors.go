package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/models"
)

// toConnectError maps ledger errors onto Connect status codes.
func toConnectError(err error) *connect.Error {
	var verr *models.ValidationError
	var perr *models.PersistenceError

	code := connect.CodeInternal
	switch {
	case errors.As(err, &verr), errors.Is(err, models.ErrInvalidAmount):
		code = connect.CodeInvalidArgument
	case errors.Is(err, models.ErrDuplicateEntity), errors.Is(err, models.ErrAlreadyMember):
		code = connect.CodeAlreadyExists
	case errors.Is(err, models.ErrInsufficientData), errors.Is(err, models.ErrNoMembers):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, models.ErrNotFound):
		code = connect.CodeNotFound
	case errors.As(err, &perr):
		code = connect.CodeUnavailable
	}
	return connect.NewError(code, err)
}
