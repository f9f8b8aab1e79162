package http

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// Contract is the OpenAPI document of the API. Requests are validated against it
// and Swagger UI renders it.
type Contract struct {
	doc  *openapi3.T
	json []byte
}

// LoadContract parses and validates the embedded document.
func LoadContract() (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	return &Contract{doc: doc, json: raw}, nil
}

// Validator rejects requests whose parameters or body do not match the operation
// of the matched route. Routes the document does not describe pass through.
// Authentication is left to Authenticate.
func (ct *Contract) Validator() echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route, ok := ct.route(c)
			if !ok {
				return next(c)
			}

			names, values := c.ParamNames(), c.ParamValues()
			params := make(map[string]string, len(names))
			for i, name := range names {
				params[name] = values[i]
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: params,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func (ct *Contract) route(c echo.Context) (*routers.Route, bool) {
	path := openAPIPath(c.Path())
	item := ct.doc.Paths.Value(path)
	if item == nil {
		return nil, false
	}
	method := c.Request().Method
	operation := item.GetOperation(method)
	if operation == nil {
		return nil, false
	}
	return &routers.Route{
		Spec:      ct.doc,
		Path:      path,
		PathItem:  item,
		Method:    method,
		Operation: operation,
	}, true
}

// openAPIPath turns an echo route ("/orders/:id") into a template ("/orders/{id}").
func openAPIPath(echoPath string) string {
	segments := strings.Split(echoPath, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var registerSwagger sync.Once

// RegisterSwagger publishes the document for echo-swagger under the default
// instance name. Only the first call registers.
func (ct *Contract) RegisterSwagger() {
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc(ct.json))
	})
}
