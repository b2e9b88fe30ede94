// Copyright 2026 The tcptune Authors
// SPDX-License-Identifier: Apache-2.0

package out

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// ConfirmToken prompts the operator to type token verbatim and returns
// whether they did. Any input error (closed stdin, ^C) counts as a decline.
func ConfirmToken(token string) bool {
	var in string
	err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Type %q to continue:", token),
	}, &in)
	if err != nil {
		return false
	}
	return strings.TrimSpace(in) == token
}

// Prompt asks for a single free-form line of input.
func Prompt(msg string, args ...interface{}) (string, error) {
	var in string
	err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf(msg, args...),
	}, &in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(in), nil
}
