// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tour

import (
	"context"
	"errors"
	"os"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/z5labs/tour/internal/try"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("will transform the built value", func(t *testing.T) {
		b := Map(BuilderFunc[int](func(ctx context.Context) (int, error) {
			return 21, nil
		}), func(n int) (int, error) {
			return n * 2, nil
		})

		n, err := b.Build(context.Background())
		require.NoError(t, err)
		require.Equal(t, 42, n)
	})

	t.Run("will not call the mapper if the builder fails", func(t *testing.T) {
		buildErr := errors.New("build failed")
		called := false
		b := Map(BuilderFunc[int](func(ctx context.Context) (int, error) {
			return 0, buildErr
		}), func(n int) (string, error) {
			called = true
			return "", nil
		})

		_, err := b.Build(context.Background())
		require.ErrorIs(t, err, buildErr)
		require.False(t, called)
	})
}

func TestDefaultRunner(t *testing.T) {
	testCases := []struct {
		name      string
		builder   Builder[Runtime]
		expectErr bool
	}{
		{
			name: "builds and runs successfully",
			builder: BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					return nil
				}), nil
			}),
		},
		{
			name: "propagates builder error",
			builder: BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return nil, errors.New("builder failed")
			}),
			expectErr: true,
		},
		{
			name: "propagates runtime error",
			builder: BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					return errors.New("runtime failed")
				}), nil
			}),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultRunner[Runtime]().Run(context.Background(), tc.builder)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecoverPanics(t *testing.T) {
	t.Run("will return a panic as an error", func(t *testing.T) {
		t.Run("if the runtime panics", func(t *testing.T) {
			b := BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					panic("test panic")
				}), nil
			})

			err := RecoverPanics(DefaultRunner[Runtime]()).Run(context.Background(), b)

			var perr try.PanicError
			require.ErrorAs(t, err, &perr)
			require.EqualError(t, err, "recovered from panic: test panic")
		})

		t.Run("if the builder panics", func(t *testing.T) {
			b := BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				panic(42)
			})

			err := RecoverPanics(DefaultRunner[Runtime]()).Run(context.Background(), b)
			require.EqualError(t, err, "recovered from panic: 42")
		})
	})
}

func TestNotifyOnSignal(t *testing.T) {
	t.Run("will run the wrapped runner", func(t *testing.T) {
		t.Run("if no signals are given", func(t *testing.T) {
			ran := false
			b := BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					ran = true
					return nil
				}), nil
			})

			err := NotifyOnSignal(DefaultRunner[Runtime]()).Run(context.Background(), b)
			require.NoError(t, err)
			require.True(t, ran)
		})
	})

	t.Run("will cancel the context", func(t *testing.T) {
		t.Run("if a signal is received", func(t *testing.T) {
			if runtime.GOOS == "windows" {
				t.Skip("signals work differently on Windows")
			}

			b := BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				}), nil
			})

			go func() {
				time.Sleep(100 * time.Millisecond)
				syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
			}()

			err := NotifyOnSignal(DefaultRunner[Runtime](), syscall.SIGUSR1).Run(context.Background(), b)
			require.ErrorIs(t, err, context.Canceled)
		})

		t.Run("if the parent context is cancelled", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			b := BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
				return RuntimeFunc(func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				}), nil
			})

			err := NotifyOnSignal(DefaultRunner[Runtime](), os.Interrupt).Run(ctx, b)
			require.ErrorIs(t, err, context.Canceled)
		})
	})
}
