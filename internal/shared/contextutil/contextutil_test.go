package contextutil_test

import (
	"context"
	"testing"

	"go-hrms/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestMeta(t *testing.T) {
	t.Run("empty context yields zero meta", func(t *testing.T) {
		meta := contextutil.GetRequestMeta(context.Background())
		assert.Equal(t, contextutil.RequestMeta{}, meta)
		assert.Empty(t, contextutil.GetActorID(context.Background()))
	})

	t.Run("stored meta is a copy", func(t *testing.T) {
		meta := contextutil.RequestMeta{ActorID: "emp-1", Role: "admin", RequestID: "rid-1"}
		ctx := contextutil.WithRequestMeta(context.Background(), meta)

		meta.ActorID = "emp-2"

		assert.Equal(t, "emp-1", contextutil.GetActorID(ctx))
		assert.True(t, contextutil.GetRequestMeta(ctx).IsAdmin())
		assert.Equal(t, "rid-1", contextutil.GetRequestID(ctx))
	})
}

func TestGetLogger_Fallback(t *testing.T) {
	def := zap.NewNop()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	custom := zap.NewExample()
	ctx := contextutil.WithLogger(context.Background(), custom)
	assert.Same(t, custom, contextutil.GetLogger(ctx, def))
}
