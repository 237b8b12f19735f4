package account

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const PasswordVariable = "SCHOOLFACTORY_KEYSTORE_PASSWORD"

var ErrNoTerminal = errors.New("stdin is not a terminal, set " + PasswordVariable)

// ReadPassword returns the keystore password from the environment, or asks
// for it on the terminal without echo.
func ReadPassword(prompt string, out io.Writer) (string, error) {
	if pwd, found := os.LookupEnv(PasswordVariable); found {
		return pwd, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}
	fmt.Fprint(out, prompt)
	pwd, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
