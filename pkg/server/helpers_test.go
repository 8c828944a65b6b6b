package server

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/vango-dev/homepage/pkg/meta"
	"github.com/vango-dev/homepage/pkg/reactive"
	"github.com/vango-dev/homepage/pkg/vdom"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counterRoot renders <main><p>{path}</p><button>n={count}</button></main>.
func counterRoot(ctx Ctx) (*vdom.VNode, error) {
	head, err := meta.Provide(ctx)
	if err != nil {
		return nil, err
	}
	head.Title("test")

	count := reactive.NewCounter(0)
	ctx.Owner().Track(count)

	return vdom.Main(
		vdom.Func(func() *vdom.VNode { return vdom.P(ctx.Path()) }),
		vdom.Button(
			vdom.OnClick(count.Inc),
			"n=",
			vdom.Func(func() *vdom.VNode { return vdom.Text(strconv.Itoa(count.Get())) }),
		),
	), nil
}
