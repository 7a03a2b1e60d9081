package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/sbxd/internal/log"
)

func TestCtxValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		expValues log.Kv
	}{
		"A context without values should return empty values.": {
			ctx:       func() context.Context { return context.TODO() },
			expValues: log.Kv{},
		},

		"Values set on the context should be returned.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.TODO(), log.Kv{"a": 1, "b": "two"})
			},
			expValues: log.Kv{"a": 1, "b": "two"},
		},

		"Values set multiple times should be merged, last one wins.": {
			ctx: func() context.Context {
				ctx := log.CtxWithValues(context.TODO(), log.Kv{"a": 1, "b": "two"})
				return log.CtxWithValues(ctx, log.Kv{"b": "three", "c": true})
			},
			expValues: log.Kv{"a": 1, "b": "three", "c": true},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			gotValues := log.ValuesFromCtx(test.ctx())
			assert.Equal(test.expValues, gotValues)
		})
	}
}
