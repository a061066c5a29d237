package handler

import (
	"github.com/dtroode/expense-auth/internal/apperr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func handleError(err error) error {
	return status.Error(grpcCode(apperr.KindOf(err)), apperr.PublicMessage(err))
}

func grpcCode(kind apperr.Kind) codes.Code {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidToken:
		return codes.InvalidArgument
	case apperr.KindConflict:
		return codes.AlreadyExists
	case apperr.KindAuthentication:
		return codes.Unauthenticated
	case apperr.KindNotFound:
		return codes.NotFound
	case apperr.KindExternalService:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
