package errdispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shiwano/errdispatch"
)

func TestContext_Clone(t *testing.T) {
	t.Run("copies entries", func(t *testing.T) {
		original := errdispatch.Context{"a": 1}
		clone := original.Clone()
		clone["b"] = 2

		if _, ok := original["b"]; ok {
			t.Error("want clone mutations not to affect the original")
		}
	})

	t.Run("nil context clones to an empty context", func(t *testing.T) {
		var c errdispatch.Context
		clone := c.Clone()

		if clone == nil {
			t.Fatal("want non-nil clone")
		}
		if len(clone) != 0 {
			t.Errorf("want empty clone, got %v", clone)
		}
	})
}

func TestContext_Merge(t *testing.T) {
	t.Run("later layers win", func(t *testing.T) {
		base := errdispatch.Context{"a": 1, "b": 1}
		merged := base.Merge(errdispatch.Context{"b": 2}, errdispatch.Context{"b": 3, "c": 3})

		if merged["a"] != 1 {
			t.Errorf("want a=1, got %v", merged["a"])
		}
		if merged["b"] != 3 {
			t.Errorf("want b=3 from the last layer, got %v", merged["b"])
		}
		if merged["c"] != 3 {
			t.Errorf("want c=3, got %v", merged["c"])
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		base := errdispatch.Context{"a": 1}
		_ = base.Merge(errdispatch.Context{"a": 2})

		if base["a"] != 1 {
			t.Errorf("want receiver to keep a=1, got %v", base["a"])
		}
	})
}

func TestContextWithValues(t *testing.T) {
	t.Run("returns same context when no values", func(t *testing.T) {
		baseCtx := context.Background()
		ctx := errdispatch.ContextWithValues(baseCtx, nil)

		if ctx != baseCtx {
			t.Error("should return same context when no values provided")
		}
	})

	t.Run("accumulates values across calls", func(t *testing.T) {
		engine := errdispatch.New[errdispatch.Context]().
			CatchAll(func(failure error, ctx errdispatch.Context) errdispatch.Context {
				additional, _ := ctx[errdispatch.AdditionalContextKey].(errdispatch.Context)
				return additional
			})
		safe := engine.SafeFnContext(func(ctx context.Context, args ...any) (errdispatch.Context, error) {
			return nil, errors.New("boom")
		}, nil)

		ctx1 := errdispatch.ContextWithValues(context.Background(), errdispatch.Context{"trace_id": "t-1"})
		ctx2 := errdispatch.ContextWithValues(ctx1, errdispatch.Context{"user_id": "u-1"})
		ctx3 := errdispatch.ContextWithValues(ctx2, errdispatch.Context{"trace_id": "t-2"})

		additional, err := safe.Call(ctx3)

		if err != nil {
			t.Fatalf("want no error, got %v", err)
		}
		if additional["trace_id"] != "t-2" {
			t.Errorf("want later value to win, got %v", additional["trace_id"])
		}
		if additional["user_id"] != "u-1" {
			t.Errorf("want accumulated value, got %v", additional["user_id"])
		}
	})

	t.Run("values never leak between independent contexts", func(t *testing.T) {
		base := context.Background()
		_ = errdispatch.ContextWithValues(base, errdispatch.Context{"a": 1})
		ctx2 := errdispatch.ContextWithValues(base, errdispatch.Context{"b": 2})

		engine := errdispatch.New[errdispatch.Context]().
			CatchAll(func(failure error, ctx errdispatch.Context) errdispatch.Context {
				additional, _ := ctx[errdispatch.AdditionalContextKey].(errdispatch.Context)
				return additional
			})
		safe := engine.SafeFnContext(func(ctx context.Context, args ...any) (errdispatch.Context, error) {
			return nil, errors.New("boom")
		}, nil)

		additional, err := safe.Call(ctx2)

		if err != nil {
			t.Fatalf("want no error, got %v", err)
		}
		if _, ok := additional["a"]; ok {
			t.Error("want values from a sibling context not to leak")
		}
		if additional["b"] != 2 {
			t.Errorf("want b=2, got %v", additional["b"])
		}
	})
}
