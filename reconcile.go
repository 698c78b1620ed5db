package typedargs

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
	"github.com/typedargs/typedargs/schema"
)

// reconcile folds the layered values into one tree, checks every supplied
// value against its declared type, then constructs the caller's result.
// Construction is all-or-nothing: any field failure aborts it and the
// aggregated report surfaces as a single error.
func (p *Parser) reconcile(out any) error {
	sources := []source{
		&defaultSource{node: p.node},
		&envSource{layer: p.envLayer},
		&cliSource{node: p.node},
	}
	layers := make([]map[string]schema.Value, len(sources))
	for i, src := range sources {
		layer, err := src.Load()
		if err != nil {
			return fmt.Errorf("loading %s layer: %w", src.Type(), err)
		}
		layers[i] = layer
	}
	resolved := resolveLayers(layers...)

	var errs FieldErrors
	p.checkNode(p.node, resolved, "", &errs)
	if len(errs) > 0 {
		return errs
	}
	if err := p.decode(resolved, out); err != nil {
		return err
	}
	return p.structRules(out)
}

// checkNode validates the resolved values of one node field by field,
// recursing into the dispatched command. Only supplied values are checked:
// declared defaults are the schema author's responsibility and may already
// carry their final type.
func (p *Parser) checkNode(node *parserNode, values map[string]any, prefix string, errs *FieldErrors) {
	for _, f := range node.sch.Fields {
		info := node.infos[f.Name]
		path := prefix + f.Name
		if info.class == classNestedCommand {
			if node.active != nil && node.active.field == f {
				sub, _ := values[f.Name].(map[string]any)
				p.checkNode(node.active.node, sub, path+".", errs)
			}
			continue
		}
		v, ok := values[f.Name]
		if !ok {
			if f.Required {
				*errs = append(*errs, &FieldError{Field: path, Msg: "field required"})
			}
			continue
		}
		if v == nil {
			if !info.allowsAbsent {
				*errs = append(*errs, &FieldError{Field: path, Msg: "none is not an allowed value"})
			}
			continue
		}
		if !p.supplied(node, f.Name) {
			continue
		}
		if msg := checkValue(info, f, v); msg != "" {
			*errs = append(*errs, &FieldError{Field: path, Msg: msg})
		}
	}
}

// supplied reports whether the field's resolved value came from the command
// line or the environment rather than a declared default.
func (p *Parser) supplied(node *parserNode, name string) bool {
	if node.ns != nil && node.ns.has(name) {
		return true
	}
	if node == p.node {
		_, ok := p.envLayer[name]
		return ok
	}
	return false
}

// checkValue reports the first mismatch between a supplied value and its
// classification, or "" when the value is acceptable.
func checkValue(info *typeInfo, f *schema.Field, v any) string {
	switch info.class {
	case classLiteralSet, classEnumeration:
		return checkChoice(info, v)
	case classContainer:
		return checkElements(info.elem, v)
	case classMapping:
		if s, ok := v.(string); ok {
			return fmt.Sprintf("value is not a valid mapping literal (got %q)", s)
		}
	default:
		if s, ok := v.(string); ok {
			return typeMismatch(f.Type, s)
		}
	}
	return ""
}

// checkChoice verifies membership in a closed set by string form. A value
// the coercion hook resolved is always a member; a leftover raw token is
// not.
func checkChoice(info *typeInfo, v any) string {
	accepted := make(map[string]bool)
	var display []string
	if info.class == classEnumeration {
		for _, m := range info.members {
			accepted[m.Name] = true
			accepted[stringForm(m.Value)] = true
			display = append(display, fmt.Sprintf("%q", m.Name))
		}
	} else {
		for _, c := range info.choices {
			accepted[stringForm(c)] = true
			display = append(display, fmt.Sprintf("%q", stringForm(c)))
		}
	}
	if accepted[stringForm(v)] {
		return ""
	}
	return fmt.Sprintf("invalid choice: %q (choose from %s)", stringForm(v), strings.Join(display, ", "))
}

// checkElements verifies each element of a repeated value against the
// declared element type. Environment values arrive as one comma-separated
// token and split the same way construction splits them.
func checkElements(elem *schema.Type, v any) string {
	switch items := v.(type) {
	case []string:
		for _, item := range items {
			if msg := typeMismatch(elem, item); msg != "" {
				return msg
			}
		}
	case string:
		for _, item := range strings.Split(items, ",") {
			if msg := typeMismatch(elem, item); msg != "" {
				return msg
			}
		}
	}
	return ""
}

// typeMismatch checks a raw token against a declared type, accepting it when
// any concrete branch does. It reports the first branch's complaint so union
// fields fail with a stable message.
func typeMismatch(t *schema.Type, s string) string {
	branches, _ := t.Concrete()
	var first string
	for _, b := range branches {
		msg := branchMismatch(b, s)
		if msg == "" {
			return ""
		}
		if first == "" {
			first = msg
		}
	}
	return first
}

func branchMismatch(t *schema.Type, s string) string {
	switch t.Kind {
	case schema.KindInt:
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return fmt.Sprintf("value is not a valid integer (got %q)", s)
		}
	case schema.KindFloat:
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Sprintf("value is not a valid number (got %q)", s)
		}
	case schema.KindBool:
		if _, err := strconv.ParseBool(s); err != nil {
			return fmt.Sprintf("value is not a valid boolean (got %q)", s)
		}
	case schema.KindDuration:
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Sprintf("value is not a valid duration (got %q)", s)
		}
	case schema.KindLiteral:
		display := make([]string, len(t.Choices))
		for i, c := range t.Choices {
			if stringForm(c) == s {
				return ""
			}
			display[i] = fmt.Sprintf("%q", stringForm(c))
		}
		return fmt.Sprintf("invalid choice: %q (choose from %s)", s, strings.Join(display, ", "))
	}
	return ""
}

// decode constructs the caller's result from the resolved tree. Weakly typed
// input converts the remaining raw tokens; hooks cover durations,
// comma-separated sequences and secret strings.
func (p *Parser) decode(resolved map[string]any, out any) error {
	k := koanf.New(layerDelim)
	if err := k.Load(rawMap(resolved), nil); err != nil {
		return fmt.Errorf("loading resolved values: %w", err)
	}
	if err := k.UnmarshalWithConf("", out, koanf.UnmarshalConf{
		Tag: "arg",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           out,
			TagName:          "arg",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				secretStringDecodeHook,
			),
		},
	}); err != nil {
		return fmt.Errorf("building result: %w", err)
	}
	return nil
}

// structRules applies the result type's own `validate` tags when the target
// is a struct.
func (p *Parser) structRules(out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	err := p.validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating result: %w", err)
	}
	errs := make(FieldErrors, 0, len(verrs))
	for _, ve := range verrs {
		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		errs = append(errs, &FieldError{
			Field: strings.ToLower(ve.Field()),
			Msg:   fmt.Sprintf("failed %q validation", rule),
		})
	}
	return errs
}

// rawMap adapts an in-memory value map to koanf's provider interface.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("rawMap provider does not support byte reads")
}

// secretStringDecodeHook converts plain strings into SecretString targets
// during construction.
func secretStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(schema.SecretString("")) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return schema.SecretString(v), nil
	case []byte:
		return schema.SecretString(v), nil
	default:
		return data, nil
	}
}
