//go:build js && wasm

// The skyscan WASM module drives the run form in the browser.
package main

import (
	"context"
	"syscall/js"

	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/dom"
	"github.com/panyam/skyscan/render"
	"github.com/panyam/skyscan/runner"
)

func main() {
	applog.Info("skyscan WASM module loading...")

	form := dom.NewForm()
	client := runner.NewClient(dom.Origin() + runner.RunPath)
	controller := runner.NewController(form, dom.NewButton(), dom.NewRegion(), client, render.New())
	controller.SetCallbacks(&runner.Callbacks{
		OnOutcome: func(o runner.Outcome) {
			if !o.OK() {
				js.Global().Get("console").Call("error", "System Error:", o.Err().Error())
			}
		},
	})

	form.OnSubmit(func() {
		if _, err := controller.Submit(context.Background()); err != nil {
			applog.Warn("submit ignored: %v", err)
		}
	})

	applog.Info("skyscan WASM module loaded, posting runs to %s", client.Endpoint())

	// Keep the WASM module running
	select {}
}
