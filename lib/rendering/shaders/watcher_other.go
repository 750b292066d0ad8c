//go:build !linux

package shaders

import (
	"context"

	"github.com/cockroachdb/errors"
)

func Watch(ctx context.Context, path string, reload chan<- struct{}) error {
	return errors.New("watching shader files needs inotify, which is only available on linux")
}
