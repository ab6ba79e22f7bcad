// Package admin implements maintenance commands run against the dashboard
// database outside the HTTP server.
package admin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/oscardash/internal/common"
)

var (
	ErrEmptyUsername    = errors.New("username must not be empty")
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// PasswordSetter is satisfied by services.UserService.
type PasswordSetter interface {
	SetPassword(ctx context.Context, userName, password string) error
}

// SetPassword asks for the new password twice and stores its hash for
// userName. When userName is empty it is read from in first.
func SetPassword(ctx context.Context, svc PasswordSetter, userName string, in *bufio.Reader, w io.Writer) error {
	if userName == "" {
		var err error
		userName, err = readLine(in, "Username", w)
		if err != nil {
			return err
		}
	}
	if userName == "" {
		return ErrEmptyUsername
	}

	pw, err := readSecret("New password", w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if len(pw) == 0 {
		return ErrEmptyPassword
	}

	confirm, err := readSecret("Repeat password", w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		return ErrPasswordMismatch
	}

	if err := svc.SetPassword(ctx, userName, string(pw)); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("user %q not found", userName)
		}
		return err
	}

	fmt.Fprintf(w, "Password updated for %s\n", userName)
	return nil
}
