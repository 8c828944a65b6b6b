package app

import (
	"net/http"
	"strconv"

	"github.com/vango-dev/homepage/pkg/reactive"
	"github.com/vango-dev/homepage/pkg/server"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// ButtonLabel precedes the click count on the home page button.
const ButtonLabel = "クリックしてみてね"

// HomePage greets the visitor and counts clicks. Every mount starts its own
// counter at zero.
func HomePage(ctx server.Ctx) *vdom.VNode {
	count := reactive.NewCounter(0)
	ctx.Owner().Track(count)

	return vdom.Fragment(
		vdom.H1("ようこそ"),
		vdom.P("Hello, World!"),
		vdom.Button(
			vdom.OnClick(count.Inc),
			ButtonLabel,
			vdom.Func(func() *vdom.VNode {
				return vdom.Text(strconv.Itoa(count.Get()))
			}),
		),
	)
}

// NotFound renders the not-found page. During the initial HTTP render it
// sets the response status to 404; after client-side navigation there is no
// response to change and the status is left alone.
func NotFound(ctx server.Ctx) *vdom.VNode {
	if resp, ok := ctx.ResponseOptions(); ok {
		if err := resp.SetStatus(http.StatusNotFound); err != nil {
			ctx.Logger().Warn("status not set", "error", err)
		}
	}
	return vdom.H1("Not Found")
}
