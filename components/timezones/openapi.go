package timezones

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIVersion is the document version emitted by OpenAPIDocument.
const OpenAPIVersion = "3.0.3"

// OpenAPIDocument describes the catalog route mounted under basePath.
func OpenAPIDocument(basePath string, fns ...OptionFn) *openapi3.T {
	return OpenAPIDocumentWithOptions(basePath, NewOptions(fns...))
}

// OpenAPIDocumentWithOptions is OpenAPIDocument for a pre-built Options value.
func OpenAPIDocumentWithOptions(basePath string, opts Options) *openapi3.T {
	opts = NewOptions(func(o *Options) { *o = opts })

	entrySchema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema()).
		WithProperty("hourOffset", openapi3.NewFloat64Schema())
	entrySchema.Required = []string{"name", "value", "hourOffset"}

	optionSchema := openapi3.NewObjectSchema().
		WithProperty("value", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema())
	optionSchema.Required = []string{"value", "label"}

	body := openapi3.NewObjectSchema().WithProperty("data", openapi3.NewOneOfSchema(
		openapi3.NewArraySchema().WithItems(entrySchema),
		openapi3.NewArraySchema().WithItems(optionSchema),
	))
	body.Required = []string{"data"}

	formatSchema := openapi3.NewStringSchema()
	formatSchema.Enum = []any{FormatOptions}

	newOperation := func(id string) *openapi3.Operation {
		return &openapi3.Operation{
			OperationID: id,
			Summary:     "List timezones ordered by current UTC offset",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewQueryParameter(opts.SearchParam).
					WithDescription("Case-insensitive filter on the zone label").
					WithSchema(openapi3.NewStringSchema())},
				{Value: openapi3.NewQueryParameter(opts.LimitParam).
					WithDescription("Maximum number of results").
					WithSchema(openapi3.NewIntegerSchema())},
				{Value: openapi3.NewQueryParameter(opts.FormatParam).
					WithDescription("Use \"options\" for value/label pairs").
					WithSchema(formatSchema)},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Matching catalog entries").
						WithJSONSchema(body),
				}),
				openapi3.WithStatus(http.StatusMethodNotAllowed, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Only GET and HEAD are allowed"),
				}),
			),
		}
	}

	return &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   "Timezone catalog",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(mountPath(basePath, opts.RoutePath), &openapi3.PathItem{
			Get:  newOperation("listTimezones"),
			Head: newOperation("headTimezones"),
		})),
	}
}
