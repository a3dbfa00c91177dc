package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type contextKey string

const (
	CtxKeyConfig contextKey = "config"
	CtxKeyCache  contextKey = "cache"
)

// ErrMissingValue means a command asked for a context value no middleware set.
var ErrMissingValue = errors.New("missing context value")

type CommandFactory func() *cobra.Command

type MiddlewareFunc func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error

type MiddlewareChain func(factory CommandFactory) CommandFactory

// UseMiddlewareChain runs middlewares in order from the command's PreRunE,
// ahead of any PreRunE the command already had. A middleware that does not
// call next stops the chain and the command.
func UseMiddlewareChain(middlewares ...MiddlewareFunc) MiddlewareChain {
	mws := append([]MiddlewareFunc(nil), middlewares...)

	return func(factory CommandFactory) CommandFactory {
		return func() *cobra.Command {
			cmd := factory()
			own := cmd.PreRunE

			var step func(i int, c *cobra.Command, a []string) error
			step = func(i int, c *cobra.Command, a []string) error {
				if i == len(mws) {
					if own != nil {
						return own(c, a)
					}
					return nil
				}
				return mws[i](c, a, func(c *cobra.Command, a []string) error {
					return step(i+1, c, a)
				})
			}

			cmd.PreRunE = func(c *cobra.Command, a []string) error {
				return step(0, c, a)
			}
			return cmd
		}
	}
}

// WithValue stores v on the command context for later middlewares and RunE.
func WithValue(cmd *cobra.Command, key contextKey, v any) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, key, v))
}

func Get[T any](cmd *cobra.Command, key contextKey) (T, error) {
	var zero T

	ctx := cmd.Context()
	if ctx == nil {
		return zero, fmt.Errorf("%w %q: command has no context", ErrMissingValue, key)
	}

	val := ctx.Value(key)
	if val == nil {
		return zero, fmt.Errorf("%w %q", ErrMissingValue, key)
	}

	v, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("context value %q has wrong type: %T", key, val)
	}
	return v, nil
}
