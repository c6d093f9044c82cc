package statusman

import "github.com/pkg/errors"

func newEmptyFieldError(name string) error {
	return errors.Errorf("unexpected empty field %s", name)
}

func newFieldError(name string, err error) error {
	return errors.Wrapf(err, "%s field verification failed", name)
}
