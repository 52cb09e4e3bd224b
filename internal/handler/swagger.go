package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/brokerly/brokerly-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// OpenAPIServers are advertised in /openapi.json
var OpenAPIServers = []Server{
	{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
	{URL: "https://api.brokerly.app/api/v1", Description: "Production"},
}

const schemaPrefix = "#/components/schemas/"

func rewriteRef(ref string) string {
	return strings.Replace(ref, "#/definitions/", schemaPrefix, 1)
}

// convertNode points Swagger 2.0 $refs below data at components/schemas
func convertNode(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			switch key {
			case "$ref":
				if ref, ok := value.(string); ok {
					result[key] = rewriteRef(ref)
					continue
				}
				result[key] = value
			default:
				result[key] = convertNode(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = convertNode(item)
		}
		return result
	default:
		return data
	}
}

// convertOperation moves body and formData parameters into requestBody and
// wraps the remaining parameters' type fields in a schema
func convertOperation(op map[string]interface{}) map[string]interface{} {
	params, _ := op["parameters"].([]interface{})
	kept := make([]interface{}, 0, len(params))
	formProps := map[string]interface{}{}
	var formRequired []interface{}

	for _, raw := range params {
		param, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch param["in"] {
		case "body":
			op["requestBody"] = map[string]interface{}{
				"required": param["required"],
				"content": map[string]interface{}{
					echo.MIMEApplicationJSON: map[string]interface{}{"schema": convertNode(param["schema"])},
				},
			}
		case "formData":
			name, _ := param["name"].(string)
			prop := map[string]interface{}{"type": param["type"]}
			if param["type"] == "file" {
				prop = map[string]interface{}{"type": "string", "format": "binary"}
			}
			formProps[name] = prop
			if required, _ := param["required"].(bool); required {
				formRequired = append(formRequired, name)
			}
		default:
			kept = append(kept, convertParameter(param))
		}
	}

	if len(formProps) > 0 {
		schema := map[string]interface{}{"type": "object", "properties": formProps}
		if len(formRequired) > 0 {
			schema["required"] = formRequired
		}
		op["requestBody"] = map[string]interface{}{
			"content": map[string]interface{}{echo.MIMEMultipartForm: map[string]interface{}{"schema": schema}},
		}
	}
	if len(kept) > 0 {
		op["parameters"] = kept
	} else {
		delete(op, "parameters")
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		for code, raw := range responses {
			resp, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if schema, ok := resp["schema"]; ok {
				delete(resp, "schema")
				resp["content"] = map[string]interface{}{
					echo.MIMEApplicationJSON: map[string]interface{}{"schema": convertNode(schema)},
				}
			}
			responses[code] = resp
		}
	}
	delete(op, "consumes")
	delete(op, "produces")
	return op
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = convertNode(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

func convertPaths(paths map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(paths))
	for path, raw := range paths {
		methods, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		converted := make(map[string]interface{}, len(methods))
		for method, rawOp := range methods {
			if op, ok := rawOp.(map[string]interface{}); ok {
				converted[method] = convertOperation(op)
			}
		}
		result[path] = converted
	}
	return result
}

// ConvertSwagger2 turns the swag-generated Swagger 2.0 document into OpenAPI 3.0
func ConvertSwagger2(doc []byte) (*OpenAPI3Spec, error) {
	var swagger2 map[string]interface{}
	if err := json.Unmarshal(doc, &swagger2); err != nil {
		return nil, err
	}

	info, _ := swagger2["info"].(map[string]interface{})
	paths, _ := swagger2["paths"].(map[string]interface{})

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = convertNode(definitions)
	}

	return &OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    OpenAPIServers,
		Paths:      convertPaths(paths),
		Components: components,
	}, nil
}

// ServeOpenAPI3Spec handles GET /openapi.json
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read swagger doc")
		return NewInternalError(c, "Failed to read API documentation")
	}

	spec, err := ConvertSwagger2([]byte(doc))
	if err != nil {
		log.Error().Err(err).Msg("Failed to convert swagger doc")
		return NewInternalError(c, "Failed to read API documentation")
	}
	return c.JSON(http.StatusOK, spec)
}
