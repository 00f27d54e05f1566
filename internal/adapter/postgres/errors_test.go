package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prismcrm/prism-backend/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	if got := MapError(nil, "deal", uuid.Nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	err := MapError(pgx.ErrNoRows, "deal", uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		err := MapError(ctxErr, "deal", uuid.New())
		if !errors.Is(err, ctxErr) {
			t.Errorf("got %v, want wrapped %v", err, ctxErr)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Errorf("context error must not map to domain error: %v", err)
		}
	}
}

func TestMapError_PgCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", domain.ErrAlreadyExists},
		{"23503", domain.ErrNotFound},
		{"23514", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := MapError(&pgconn.PgError{Code: tt.code}, "deal", uuid.New())
			if !errors.Is(err, tt.want) {
				t.Errorf("code %s: got %v, want %v", tt.code, err, tt.want)
			}
		})
	}
}

func TestMapError_UnknownWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := MapError(cause, "deal", uuid.New())
	if !errors.Is(err, cause) {
		t.Errorf("got %v, want wrapped cause", err)
	}
}
