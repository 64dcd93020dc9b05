//go:build !wasm
// +build !wasm

package server

// Builds the browser controller into the static dir served under /static/.
//go:generate env GOOS=js GOARCH=wasm go build -o ../static/skyscan.wasm ../../cmd/wasm
//go:generate cp $GOROOT/lib/wasm/wasm_exec.js ../static/wasm_exec.js
