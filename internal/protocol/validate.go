package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var requestSchemaFiles = map[string]string{
	TypeCreate:  "create.schema.json",
	TypeDestroy: "destroy.schema.json",
	TypeQuery:   "query.schema.json",
	TypeQuery2D: "query_2d.schema.json",
	TypeReseed:  "reseed.schema.json",
}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func requestSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		for _, name := range requestSchemaFiles {
			b, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				schemasErr = err
				return
			}
			if err := c.AddResource(schemaURL(name), bytes.NewReader(b)); err != nil {
				schemasErr = fmt.Errorf("%s: %w", name, err)
				return
			}
		}
		out := make(map[string]*jsonschema.Schema, len(requestSchemaFiles))
		for typ, name := range requestSchemaFiles {
			s, err := c.Compile(schemaURL(name))
			if err != nil {
				schemasErr = fmt.Errorf("%s: %w", name, err)
				return
			}
			out[typ] = s
		}
		schemas = out
	})
	return schemas, schemasErr
}

func schemaURL(name string) string { return "mem://endgen/schemas/" + name }

// DecodeRequest validates a client frame against the schema for its type
// and returns the typed message (*CreateMsg, *DestroyMsg, *QueryMsg,
// *Query2DMsg or *ReseedMsg). The returned base is filled even on
// validation failure when the frame is at least a JSON object.
func DecodeRequest(b []byte) (BaseMessage, any, error) {
	base, err := DecodeBase(b)
	if err != nil {
		return base, nil, fmt.Errorf("bad json: %w", err)
	}
	all, err := requestSchemas()
	if err != nil {
		return base, nil, fmt.Errorf("schemas: %w", err)
	}
	s, ok := all[base.Type]
	if !ok {
		return base, nil, fmt.Errorf("unknown message type %q", base.Type)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return base, nil, fmt.Errorf("bad json: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return base, nil, err
	}

	var msg any
	switch base.Type {
	case TypeCreate:
		msg = &CreateMsg{}
	case TypeDestroy:
		msg = &DestroyMsg{}
	case TypeQuery:
		msg = &QueryMsg{}
	case TypeQuery2D:
		msg = &Query2DMsg{}
	case TypeReseed:
		msg = &ReseedMsg{}
	}
	if err := json.Unmarshal(b, msg); err != nil {
		return base, nil, fmt.Errorf("bad json: %w", err)
	}
	return base, msg, nil
}
