//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"schoolbuild/pkg/engine"
	"schoolbuild/pkg/logging"
	"schoolbuild/pkg/report"
)

// errorJSON renders an error response.
func errorJSON(msg string) string {
	errJSON, _ := json.Marshal(map[string]string{"error": msg})
	return string(errJSON)
}

// source reads a {name, data: Uint8Array} object. Missing or null values
// yield nil.
func source(v js.Value) *engine.Source {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	data := v.Get("data")
	if data.IsUndefined() || data.IsNull() {
		return nil
	}
	buf := make([]byte, data.Get("length").Int())
	js.CopyBytesToGo(buf, data)
	return &engine.Source{Name: v.Get("name").String(), Data: buf}
}

// sources reads an array of {name, data} objects.
func sources(v js.Value) []engine.Source {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	var out []engine.Source
	for i := 0; i < v.Length(); i++ {
		if s := source(v.Index(i)); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// schoolBuild handles the schoolBuild JS function call.
// args[0] = object keyed by role: rooms, teachers, classes and subjects hold
// one {name, data} object; students and courses hold arrays of them.
// Returns: JSON string {outputs: {name: csvText}, summary}.
func schoolBuild(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON("schoolBuild requires 1 argument: the request object")
	}
	req := args[0]

	in := engine.Inputs{
		Rooms:    source(req.Get("rooms")),
		Teachers: source(req.Get("teachers")),
		Students: sources(req.Get("students")),
		Courses:  sources(req.Get("courses")),
		Classes:  source(req.Get("classes")),
		Subjects: source(req.Get("subjects")),
	}
	if in.Empty() {
		return errorJSON("no input files given")
	}

	ctx := logging.WithLogger(context.Background(), &logging.Nop)
	resp, err := report.MarshalResponse(engine.Build(ctx, in))
	if err != nil {
		return errorJSON(err.Error())
	}
	return string(resp)
}

func main() {
	js.Global().Set("schoolBuild", js.FuncOf(schoolBuild))

	// Block forever so the module stays alive.
	select {}
}
