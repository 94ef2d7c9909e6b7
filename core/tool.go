package core

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

var (
	ctxType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

var stateType = reflect.TypeOf(State(nil))

// Tool wraps a typed Go function of the form
//
//	func(ctx context.Context, input In) (Out, error)
//
// or, for tools that read or populate the session state bag,
//
//	func(ctx context.Context, s State, input In) (Out, error)
//
// so it can be exposed to the model as a function declaration. The parameter
// schema is reflected from the input struct; tool outputs are converted to a
// JSON-serializable map before they are handed back to the model.
type Tool struct {
	name        string
	description string
	schema      *genai.Schema
	fn          reflect.Value
	inType      reflect.Type
	stateAware  bool
	propagate   bool
}

// PropagateErrors marks the tool's handler errors as fatal: instead of
// flowing back to the model as a status dictionary, they abort the agent
// run. Used by tools whose failure the model cannot recover from, like
// report upload.
func (t *Tool) PropagateErrors() *Tool {
	t.propagate = true
	return t
}

func NewTool(name, description string, handler any) (*Tool, error) {
	fn := reflect.ValueOf(handler)
	ft := fn.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("tool %s: handler is not a function", name)
	}
	stateAware := false
	switch {
	case ft.NumIn() == 2 && ft.In(0) == ctxType:
	case ft.NumIn() == 3 && ft.In(0) == ctxType && ft.In(1) == stateType:
		stateAware = true
	default:
		return nil, fmt.Errorf("tool %s: handler must be func(ctx[, state], input) (output, error)", name)
	}
	if ft.NumOut() != 2 || ft.Out(1) != errorType {
		return nil, fmt.Errorf("tool %s: handler must return (output, error)", name)
	}
	inType := ft.In(ft.NumIn() - 1)
	if inType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool %s: input parameter must be a struct", name)
	}
	schema, err := reflectSchema(inType)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	return &Tool{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
		inType:      inType,
		stateAware:  stateAware,
	}, nil
}

// MustTool is NewTool for package-level tool tables, where a bad handler
// signature is a programming error.
func MustTool(name, description string, handler any) *Tool {
	t, err := NewTool(name, description, handler)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tool) Name() string        { return t.name }
func (t *Tool) Description() string { return t.description }

// Declaration returns the genai function declaration for this tool.
func (t *Tool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.name,
		Description: t.description,
		Parameters:  t.schema,
	}
}

// Call invokes the handler with the model-provided arguments. The handler's
// error, if any, is returned as a status dictionary rather than an error so
// that expected failures flow back to the model as data; tools marked with
// PropagateErrors return it as a Go error instead.
func (t *Tool) Call(ctx context.Context, s State, args map[string]any) (map[string]any, error) {
	in := reflect.New(t.inType)
	if len(args) > 0 {
		raw, err := json.Marshal(args)
		if err != nil {
			return map[string]any{"status": "error", "error": err.Error()}, nil
		}
		if err := json.Unmarshal(raw, in.Interface()); err != nil {
			return map[string]any{
				"status": "error",
				"error":  fmt.Sprintf("invalid arguments for tool %s: %v", t.name, err),
			}, nil
		}
	}
	callArgs := []reflect.Value{reflect.ValueOf(ctx)}
	if t.stateAware {
		if s == nil {
			s = NewState()
		}
		callArgs = append(callArgs, reflect.ValueOf(s))
	}
	callArgs = append(callArgs, in.Elem())
	out := t.fn.Call(callArgs)
	if errVal := out[1].Interface(); errVal != nil {
		err := errVal.(error)
		if t.propagate {
			return nil, fmt.Errorf("tool %s: %w", t.name, err)
		}
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	return toResultMap(out[0].Interface()), nil
}

// toResultMap flattens an arbitrary tool output into the map shape the model
// consumes as a function response.
func toResultMap(v any) map[string]any {
	switch typed := v.(type) {
	case map[string]any:
		return typed
	case string:
		return map[string]any{"result": typed}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		// Non-object output (slice, scalar): wrap it.
		var anyVal any
		if err := json.Unmarshal(raw, &anyVal); err != nil {
			return map[string]any{"status": "error", "error": err.Error()}
		}
		return map[string]any{"result": anyVal}
	}
	return m
}

// jsonSchema is the subset of JSON schema the Gemini API understands.
type jsonSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Properties  map[string]*jsonSchema `json:"properties"`
	Items       *jsonSchema            `json:"items"`
	Required    []string               `json:"required"`
}

// reflectSchema derives a genai parameter schema from a tool input struct
// via jsonschema reflection.
func reflectSchema(t reflect.Type) (*genai.Schema, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	raw, err := json.Marshal(reflector.ReflectFromType(t))
	if err != nil {
		return nil, err
	}
	var js jsonSchema
	if err := json.Unmarshal(raw, &js); err != nil {
		return nil, err
	}
	return js.toGenai(), nil
}

func (js *jsonSchema) toGenai() *genai.Schema {
	if js == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(js.Type),
		Description: js.Description,
		Required:    js.Required,
		Items:       js.Items.toGenai(),
	}
	if len(js.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(js.Properties))
		for name, prop := range js.Properties {
			out.Properties[name] = prop.toGenai()
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object", "":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
