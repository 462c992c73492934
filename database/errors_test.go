package database

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"gorm not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicateKey},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: subjects.name"), ErrDuplicateKey},
		{"postgres unique violation", errors.New(`duplicate key value violates unique constraint "idx_users_user_id"`), ErrDuplicateKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TranslateError(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTranslateErrorPassesUnknownThrough(t *testing.T) {
	ioErr := fmt.Errorf("disk I/O error")
	if got := TranslateError(ioErr); got != ioErr {
		t.Fatalf("unknown errors must pass through unchanged, got %v", got)
	}
}
