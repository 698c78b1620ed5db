package typedargs

import (
	"fmt"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/typedargs/typedargs/schema"
)

// layerDelim separates nested keys in the reconciler's koanf instances. The
// default "." would split mapping-literal keys that contain dots.
const layerDelim = "::"

// sourceType identifies one layer of the reconciliation stack.
type sourceType string

const (
	sourceDefaults sourceType = "defaults"
	sourceEnv      sourceType = "env"
	sourceCLI      sourceType = "cli"
)

// source produces one layer of field values. A supplied entry carries an
// explicit value, an absent entry was explicitly cleared, and a missing key
// defers to the layers below. Layers resolve field-wise, never merged
// structurally, so a mapping supplied on a higher layer replaces the lower
// one outright.
type source interface {
	Load() (map[string]schema.Value, error)
	Type() sourceType
}

// defaultSource exposes the declared defaults of a node's plain fields.
// Required fields contribute nothing and command fields contribute through
// dispatch.
type defaultSource struct {
	node *parserNode
}

func (s *defaultSource) Load() (map[string]schema.Value, error) {
	return s.node.defaultLayer(), nil
}

func (s *defaultSource) Type() sourceType { return sourceDefaults }

// envSource exposes the environment overlay scanned before token parsing.
type envSource struct {
	layer map[string]schema.Value
}

func (s *envSource) Load() (map[string]schema.Value, error) {
	return s.layer, nil
}

func (s *envSource) Type() sourceType { return sourceEnv }

// cliSource exposes the coerced namespace of the root node, including the
// resolved subtree of the invoked command.
type cliSource struct {
	node *parserNode
}

func (s *cliSource) Load() (map[string]schema.Value, error) {
	return s.node.cliLayer(), nil
}

func (s *cliSource) Type() sourceType { return sourceCLI }

func (p *parserNode) defaultLayer() map[string]schema.Value {
	layer := make(map[string]schema.Value)
	for _, f := range p.sch.Fields {
		if p.infos[f.Name].class == classNestedCommand {
			continue
		}
		v, ok := f.DefaultValue()
		if !ok {
			continue
		}
		if v == nil {
			layer[f.Name] = schema.Absent()
		} else {
			layer[f.Name] = schema.Supplied(v)
		}
	}
	return layer
}

// cookNamespace runs each raw namespace entry through its field's coercion
// hook. Repeated values pass through as-is: their elements convert during
// construction.
func (p *parserNode) cookNamespace() map[string]schema.Value {
	layer := make(map[string]schema.Value, len(p.ns.values))
	for dest, raw := range p.ns.values {
		coerce, ok := p.coercers[dest]
		if !ok {
			continue
		}
		cooked := coerce(raw)
		if cooked == nil {
			layer[dest] = schema.Absent()
		} else {
			layer[dest] = schema.Supplied(cooked)
		}
	}
	return layer
}

func (p *parserNode) cliLayer() map[string]schema.Value {
	layer := p.cookNamespace()
	if p.active != nil {
		layer[p.active.field.Name] = schema.Supplied(p.active.node.resolveTree())
	}
	return layer
}

// resolveTree materializes a dispatched node's final value map: defaults
// under its own namespace, recursing into the next command.
func (p *parserNode) resolveTree() map[string]any {
	return resolveLayers(p.defaultLayer(), p.cliLayer())
}

// resolveLayers folds ordered layers into one value map. Later layers take
// precedence field-wise: a supplied entry wins outright and an absent one
// resolves to the absence sentinel, overriding any default below it.
func resolveLayers(layers ...map[string]schema.Value) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			if v.IsSupplied() {
				out[k] = v.Get()
			} else if v.IsAbsent() {
				out[k] = nil
			}
		}
	}
	return out
}

// scanEnv reads the environment overlay into a value layer. Known variables
// feed their field through the same coercion hook as command-line tokens; an
// empty value clears the field to its absence sentinel. Unknown variables are
// dropped by returning an empty key from the transform.
func (p *Parser) scanEnv() (map[string]schema.Value, error) {
	if !p.opts.envEnabled {
		return nil, nil
	}
	k := koanf.New(layerDelim)
	provider := env.Provider(layerDelim, env.Opt{
		Prefix: p.opts.envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			field, ok := p.envKeys[key]
			if !ok {
				return "", nil
			}
			return field, value
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("loading environment overlay: %w", err)
	}
	layer := make(map[string]schema.Value)
	for field, raw := range k.Raw() {
		cooked := p.node.coercers[field](raw)
		if cooked == nil {
			layer[field] = schema.Absent()
		} else {
			layer[field] = schema.Supplied(cooked)
		}
		p.opts.logger.Debug("environment override", "prog", p.opts.prog, "field", field)
	}
	return layer, nil
}
