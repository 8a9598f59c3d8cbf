// Package config carries the two halves of a gate run's configuration: the
// per-run CI context read from environment variables, and the course rule
// set the checks compare against.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Context holds the pull-request facts CI exports for one run. Author is the
// reference username every other check derives its expectation from.
type Context struct {
	Author  string `validate:"required"`
	Title   string
	Branch  string
	BaseSHA string `validate:"required"`
	HeadSHA string `validate:"required"`
}

// envMapping ties an environment variable to a Context field.
type envMapping struct {
	EnvKey string
	Field  string
	Set    func(c *Context, value string)
}

func buildEnvMappings() []envMapping {
	return []envMapping{
		{"PR_AUTHOR", "Author", func(c *Context, v string) { c.Author = v }},
		{"PR_TITLE", "Title", func(c *Context, v string) { c.Title = v }},
		{"PR_HEAD_REF", "Branch", func(c *Context, v string) { c.Branch = v }},
		{"BASE_SHA", "BaseSHA", func(c *Context, v string) { c.BaseSHA = v }},
		{"HEAD_SHA", "HeadSHA", func(c *Context, v string) { c.HeadSHA = v }},
	}
}

// FromEnv reads the CI context. Every value is trimmed once, here.
func FromEnv() Context {
	var ctx Context
	for _, m := range buildEnvMappings() {
		m.Set(&ctx, strings.TrimSpace(os.Getenv(m.EnvKey)))
	}
	return ctx
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Missing returns the environment variable names of required context values
// that are absent, in mapping order.
func (c Context) Missing() []string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	var missing []string
	for _, m := range buildEnvMappings() {
		if failed[m.Field] {
			missing = append(missing, m.EnvKey)
		}
	}
	return missing
}

// LoadEnvFile loads environment variables from a dotenv file: an explicit
// path must load, a conventional .env is picked up only when present.
func LoadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		godotenv.Load(".env")
	}
	return nil
}
