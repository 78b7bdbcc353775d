// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form binds and validates the public blog forms: sharing a post
// by email, posting a comment and searching.
package form

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its first validation message.
// The empty key "" holds form-wide errors.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the error for field or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Valid reports whether there are no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// ShareForm is the "recommend this post" form.
type ShareForm struct {
	Name     string `form:"name" validate:"required,max=25"`
	Email    string `form:"email" validate:"required,email"`
	To       string `form:"to" validate:"required,email"`
	Comments string `form:"comments"`
}

// CommentForm is the form for adding a comment to a post.
type CommentForm struct {
	Name  string `form:"name" validate:"required,max=80"`
	Email string `form:"email" validate:"required,email"`
	Body  string `form:"body" validate:"required"`
}

// SearchForm is the search query form.
type SearchForm struct {
	Query string `form:"query" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Bind fills the string fields of the struct pointed to by dst from values,
// using the form struct tag as the key. Values are trimmed of surrounding
// whitespace.
func Bind(values url.Values, dst any) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || f.Type.Kind() != reflect.String {
			continue
		}
		rv.Field(i).SetString(strings.TrimSpace(values.Get(name)))
	}
}

// Validate runs the validate tags of form and converts failures to
// user-facing messages keyed by field name.
func Validate(form any) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs[""] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if errs.Has(fe.Field()) {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	default:
		return "Enter a valid value."
	}
}

// ParseShare binds and validates a share form submission.
func ParseShare(values url.Values) (ShareForm, Errors) {
	var f ShareForm
	Bind(values, &f)
	return f, Validate(f)
}

// ParseComment binds and validates a comment form submission.
func ParseComment(values url.Values) (CommentForm, Errors) {
	var f CommentForm
	Bind(values, &f)
	return f, Validate(f)
}

// ParseSearch binds and validates a search query.
func ParseSearch(values url.Values) (SearchForm, Errors) {
	var f SearchForm
	Bind(values, &f)
	return f, Validate(f)
}
