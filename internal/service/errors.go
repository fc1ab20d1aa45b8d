package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a failure so the HTTP layer can translate it to a status
// code without inspecting store or transport internals.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindNotFound
	KindServiceUnavailable
	KindBadGateway
	KindDataIntegrity
	KindStoreUnavailable
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the classification from any error. Unwrapped errors count
// as unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// classifyStoreErr keeps empty-result and operational faults distinct: no
// rows is NotFound, a constraint violation is DataIntegrity, anything else is
// a store fault.
func classifyStoreErr(err error, notFoundMsg string) *Error {
	if errors.Is(err, pgx.ErrNoRows) {
		return newError(KindNotFound, notFoundMsg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return newError(KindDataIntegrity, "restrição de integridade violada", err)
	}
	return newError(KindStoreUnavailable, "falha ao acessar o banco de dados", err)
}
