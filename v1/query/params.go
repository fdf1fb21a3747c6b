package query

import (
	"strings"

	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
	"github.com/jackc/pgx/v5"
)

// Text is a parameter value bound as text.
type Text string

// JSONB is a parameter value holding JSON text bound to a jsonb operand.
type JSONB string

// Parameter binds one placeholder (including its leading '@') to a value.
type Parameter struct {
	Name  string
	Value any
}

// Parameters is an ordered parameter set. Each placeholder referenced by a
// statement must appear exactly once.
type Parameters []Parameter

// Param creates a parameter for custom statements.
// The leading '@' is added when missing.
func Param(name string, value any) Parameter {
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}
	return Parameter{Name: name, Value: value}
}

// IDParam binds the document identity to @id.
func IDParam(id string) Parameter {
	return Parameter{Name: ParamID, Value: Text(id)}
}

// JSONPathParam binds a JSON-Path expression to @path.
func JSONPathParam(path string) Parameter {
	return Parameter{Name: ParamPath, Value: Text(path)}
}

// DataParam serializes doc and binds it to @data.
func DataParam(s serializer.Serializer, doc any) (Parameter, error) {
	text, err := s.Serialize(doc)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Name: ParamData, Value: JSONB(text)}, nil
}

// ContainsParam serializes the partial-match criteria and binds it to @criteria.
func ContainsParam(s serializer.Serializer, criteria any) (Parameter, error) {
	text, err := s.Serialize(criteria)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Name: ParamCriteria, Value: JSONB(text)}, nil
}

// DocParams returns the canonical [@id, @data] set for writes by identity.
func DocParams(s serializer.Serializer, id string, doc any) (Parameters, error) {
	data, err := DataParam(s, doc)
	if err != nil {
		return nil, err
	}
	return Parameters{IDParam(id), data}, nil
}

// Names returns the placeholder names in order.
func (p Parameters) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

// NamedArgs converts the set into pgx named arguments, unwrapping typed values.
func (p Parameters) NamedArgs() pgx.NamedArgs {
	args := make(pgx.NamedArgs, len(p))
	for _, param := range p {
		args[strings.TrimPrefix(param.Name, "@")] = plain(param.Value)
	}
	return args
}

func plain(value any) any {
	switch v := value.(type) {
	case Text:
		return string(v)
	case JSONB:
		return string(v)
	default:
		return v
	}
}
