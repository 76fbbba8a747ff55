package validate

import (
	"net/mail"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "may not be blank"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if _, err := mail.ParseAddress(value); err != nil {
		return &ErrField{Field: field, Msg: "Enter a valid email address."}
	}
	return nil
}

func Range(field string, v, lo, hi float64) *ErrField {
	if v < lo || v > hi {
		return &ErrField{Field: field, Msg: "value out of range"}
	}
	return nil
}
