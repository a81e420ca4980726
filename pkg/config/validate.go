package config

import (
	"errors"
	"fmt"
	"reflect"

	playground "github.com/go-playground/validator/v10"
)

var structValidator = playground.New(playground.WithRequiredStructEnabled())

// validate checks validate tags on struct configs. Other kinds pass through.
func validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Join(ErrInvalidConfig, err)
	}
	errs := []error{ErrInvalidConfig}
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: value %v fails %q", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return errors.Join(errs...)
}
