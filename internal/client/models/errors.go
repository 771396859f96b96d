package models

import (
	"fmt"
	"strings"
)

// ValidationError reports required form fields left blank. It is raised on
// the client before any request is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please fill in all required fields: %s", strings.Join(e.Fields, ", "))
}
