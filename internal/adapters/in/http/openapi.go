package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// Document returns the OpenAPI 3 description of the API. It backs both
// /openapi.json and the Swagger UI.
var Document = sync.OnceValue(buildDocument)

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	b, err := json.Marshal(Document())
	if err != nil {
		return "{}"
	}
	return string(b)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

func buildDocument() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Shipment Fulfillment API",
			Description: "Creates shipments, tracks them through delivery and reconciles carrier updates.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{{URL: "/api/v1"}},
		Paths:   openapi3.NewPaths(),
	}

	add := func(method, path, id, summary, tag string, configure func(op *openapi3.Operation)) {
		op := openapi3.NewOperation()
		op.OperationID = id
		op.Summary = summary
		op.Tags = []string{tag}
		configure(op)
		doc.AddOperation(path, method, op)
	}

	add(http.MethodPost, "/shipments", "createShipment", "Create a shipment", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		withBody(op, shipmentPayloadSchema())
		respond(op, http.StatusCreated, "Shipment created", createdShipmentSchema())
		fails(op, http.StatusBadRequest, http.StatusForbidden)
	})
	add(http.MethodGet, "/shipments", "listShipments", "List shipments with ledger statistics", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		op.AddParameter(openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema().WithMin(1)))
		op.AddParameter(openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema().WithMin(1).WithMax(100)))
		op.AddParameter(openapi3.NewQueryParameter("status").WithSchema(statusSchema()))
		op.AddParameter(openapi3.NewQueryParameter("carrierType").WithSchema(openapi3.NewStringSchema().WithEnum("internal", "external")))
		op.AddParameter(openapi3.NewQueryParameter("from").WithSchema(openapi3.NewDateTimeSchema()))
		op.AddParameter(openapi3.NewQueryParameter("to").WithSchema(openapi3.NewDateTimeSchema()))
		op.AddParameter(openapi3.NewQueryParameter("search").WithSchema(openapi3.NewStringSchema()))
		respond(op, http.StatusOK, "A page of shipments", openapi3.NewObjectSchema().
			WithProperty("shipments", openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema())).
			WithProperty("total", openapi3.NewInt64Schema()).
			WithProperty("page", openapi3.NewIntegerSchema()).
			WithProperty("limit", openapi3.NewIntegerSchema()).
			WithProperty("stats", openapi3.NewObjectSchema()))
		fails(op, http.StatusBadRequest, http.StatusForbidden)
	})
	add(http.MethodGet, "/shipments/track/{reference}", "trackShipment", "Track a shipment by reference", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		op.AddParameter(openapi3.NewPathParameter("reference").WithSchema(openapi3.NewStringSchema()))
		respond(op, http.StatusOK, "Shipment with items, addresses and tracking events", openapi3.NewObjectSchema())
		fails(op, http.StatusForbidden, http.StatusNotFound)
	})
	add(http.MethodPut, "/shipments/status/{id}", "updateShipmentStatus", "Change a shipment status", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		withBody(op, openapi3.NewObjectSchema().
			WithProperty("status", statusSchema()).
			WithProperty("description", openapi3.NewStringSchema()).
			WithProperty("location", openapi3.NewStringSchema()).
			WithProperty("notes", openapi3.NewStringSchema()).
			WithProperty("source", openapi3.NewStringSchema()).
			WithProperty("performedBy", openapi3.NewStringSchema()).
			WithProperty("metadata", openapi3.NewObjectSchema()))
		respond(op, http.StatusOK, "Status changed", statusChangeSchema())
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusConflict)
	})
	add(http.MethodPost, "/shipments/cancel/{id}", "cancelShipment", "Cancel a pending shipment", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		withBody(op, openapi3.NewObjectSchema().WithProperty("reason", openapi3.NewStringSchema()))
		op.RequestBody.Value.Required = false
		respond(op, http.StatusOK, "Shipment cancelled", statusChangeSchema())
		fails(op, http.StatusForbidden, http.StatusNotFound, http.StatusConflict)
	})
	add(http.MethodDelete, "/shipments/{id}", "deleteShipment", "Delete a shipment and its history", "shipments", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		respond(op, http.StatusNoContent, "Shipment deleted", nil)
		fails(op, http.StatusForbidden, http.StatusNotFound)
	})
	add(http.MethodPost, "/shipments/webhooks/{carrier}", "carrierWebhook", "Apply a carrier status callback", "webhooks", func(op *openapi3.Operation) {
		op.AddParameter(openapi3.NewPathParameter("carrier").WithSchema(openapi3.NewStringSchema()))
		op.AddParameter(openapi3.NewHeaderParameter(HeaderWebhookSecret).WithSchema(openapi3.NewStringSchema()))
		withBody(op, openapi3.NewObjectSchema().
			WithProperty("tracking_number", openapi3.NewStringSchema()).
			WithProperty("status", openapi3.NewStringSchema()).
			WithProperty("location", openapi3.NewStringSchema()))
		respond(op, http.StatusOK, "Update applied", statusChangeSchema())
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusTooManyRequests)
	})

	add(http.MethodPost, "/routes/match", "matchRoute", "Price a parcel on a lane", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		withBody(op, openapi3.NewObjectSchema().
			WithProperty("originCity", openapi3.NewStringSchema()).
			WithProperty("destinationCity", openapi3.NewStringSchema()).
			WithProperty("transportMode", transportModeSchema()).
			WithProperty("serviceLevel", openapi3.NewStringSchema()).
			WithProperty("weight", openapi3.NewFloat64Schema().WithMin(0)))
		respond(op, http.StatusOK, "Matching template and bracket", openapi3.NewObjectSchema().
			WithProperty("template", routeTemplateSchema()).
			WithProperty("bracket", weightBracketSchema()))
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound)
	})
	add(http.MethodGet, "/routes", "listRouteTemplates", "List route templates", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		respond(op, http.StatusOK, "Route templates", openapi3.NewArraySchema().WithItems(routeTemplateSchema()))
		fails(op, http.StatusForbidden)
	})
	add(http.MethodPost, "/routes", "createRouteTemplate", "Create a route template", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		withBody(op, routeTemplatePayloadSchema())
		respond(op, http.StatusCreated, "Route template created", createdSchema())
		fails(op, http.StatusBadRequest, http.StatusForbidden)
	})
	add(http.MethodGet, "/routes/{id}", "getRouteTemplate", "Read a route template", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		respond(op, http.StatusOK, "Route template", routeTemplateSchema())
		fails(op, http.StatusForbidden, http.StatusNotFound)
	})
	add(http.MethodPut, "/routes/{id}", "updateRouteTemplate", "Replace a route template", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		withBody(op, routeTemplatePayloadSchema())
		respond(op, http.StatusNoContent, "Route template replaced", nil)
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound)
	})
	add(http.MethodDelete, "/routes/{id}", "deleteRouteTemplate", "Delete a route template", "routes", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		respond(op, http.StatusNoContent, "Route template deleted", nil)
		fails(op, http.StatusForbidden, http.StatusNotFound)
	})

	add(http.MethodPost, "/drivers", "createDriver", "Register a fleet driver", "drivers", func(op *openapi3.Operation) {
		withIdentity(op)
		withBody(op, openapi3.NewObjectSchema().
			WithProperty("driverCode", openapi3.NewStringSchema()).
			WithProperty("userId", openapi3.NewUUIDSchema()).
			WithProperty("vehicleType", openapi3.NewStringSchema().WithEnum("bike", "car", "van", "truck")).
			WithProperty("registration", openapi3.NewStringSchema()).
			WithProperty("metadata", openapi3.NewObjectSchema()))
		respond(op, http.StatusCreated, "Driver registered", createdSchema())
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusConflict)
	})
	add(http.MethodPut, "/drivers/{id}/status", "changeDriverStatus", "Change a driver status", "drivers", func(op *openapi3.Operation) {
		withIdentity(op)
		withID(op)
		withBody(op, openapi3.NewObjectSchema().
			WithProperty("status", openapi3.NewStringSchema().WithEnum("active", "inactive", "on_leave", "suspended")))
		respond(op, http.StatusNoContent, "Driver status changed", nil)
		fails(op, http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound)
	})

	return doc
}

func withIdentity(op *openapi3.Operation) {
	op.AddParameter(openapi3.NewHeaderParameter(HeaderUserID).WithRequired(true).WithSchema(openapi3.NewUUIDSchema()))
	op.AddParameter(openapi3.NewHeaderParameter(HeaderUserRole).WithRequired(true).
		WithSchema(openapi3.NewStringSchema().WithEnum("admin", "driver", "customer")))
}

func withID(op *openapi3.Operation) {
	op.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewUUIDSchema()))
}

func withBody(op *openapi3.Operation, schema *openapi3.Schema) {
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema),
	}
}

func respond(op *openapi3.Operation, status int, description string, schema *openapi3.Schema) {
	response := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		response = response.WithJSONSchema(schema)
	}
	op.AddResponse(status, response)
}

func fails(op *openapi3.Operation, statuses ...int) {
	for _, status := range statuses {
		respond(op, status, http.StatusText(status), errorSchema())
	}
}

func errorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewIntegerSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("errors", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
}

func statusSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum(
		"pending", "picked_up", "in_transit", "delivered", "failed", "cancelled", "returned")
}

func transportModeSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum("road", "air", "sea")
}

func createdSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperty("id", openapi3.NewUUIDSchema())
}

func statusChangeSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("shipmentId", openapi3.NewUUIDSchema()).
		WithProperty("shipmentReference", openapi3.NewStringSchema()).
		WithProperty("previousStatus", statusSchema()).
		WithProperty("status", statusSchema()).
		WithProperty("actualDeliveryAt", openapi3.NewDateTimeSchema())
}

func createdShipmentSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("shipmentId", openapi3.NewUUIDSchema()).
		WithProperty("shipmentReference", openapi3.NewStringSchema()).
		WithProperty("trackingUrl", openapi3.NewStringSchema()).
		WithProperty("carrier", openapi3.NewObjectSchema().
			WithProperty("type", openapi3.NewStringSchema().WithEnum("internal", "external")).
			WithProperty("name", openapi3.NewStringSchema())).
		WithProperty("status", statusSchema()).
		WithProperty("shippingFee", openapi3.NewFloat64Schema()).
		WithProperty("estimatedDelivery", openapi3.NewStringSchema()).
		WithProperty("externalReference", openapi3.NewStringSchema()).
		WithProperty("driverId", openapi3.NewUUIDSchema())
}

func addressSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, name := range []string{"name", "phone", "email", "line1", "line2", "city", "state", "country", "zip", "instructions"} {
		s.WithProperty(name, openapi3.NewStringSchema())
	}
	s.WithProperty("isResidential", openapi3.NewBoolSchema())
	s.WithProperty("metadata", openapi3.NewObjectSchema())
	s.Required = []string{"phone", "line1", "city", "state", "country"}
	return s
}

func shipmentPayloadSchema() *openapi3.Schema {
	item := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("quantity", openapi3.NewIntegerSchema().WithMin(1)).
		WithProperty("unitPrice", openapi3.NewFloat64Schema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("value", openapi3.NewFloat64Schema()).
		WithProperty("totalPrice", openapi3.NewFloat64Schema()).
		WithProperty("weight", openapi3.NewFloat64Schema()).
		WithProperty("dimensions", openapi3.NewObjectSchema().
			WithProperty("length", openapi3.NewFloat64Schema()).
			WithProperty("width", openapi3.NewFloat64Schema()).
			WithProperty("height", openapi3.NewFloat64Schema())).
		WithProperty("currency", openapi3.NewStringSchema()).
		WithProperty("metadata", openapi3.NewObjectSchema())

	s := openapi3.NewObjectSchema().
		WithProperty("orderReference", openapi3.NewStringSchema()).
		WithProperty("vendorName", openapi3.NewStringSchema()).
		WithProperty("pickupAddress", addressSchema()).
		WithProperty("deliveryAddress", addressSchema()).
		WithProperty("items", openapi3.NewArraySchema().WithItems(item)).
		WithProperty("transportMode", transportModeSchema()).
		WithProperty("serviceLevel", openapi3.NewStringSchema()).
		WithProperty("carrierName", openapi3.NewStringSchema()).
		WithProperty("carrierSlug", openapi3.NewStringSchema()).
		WithProperty("dispatcher", openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema()).
			WithProperty("carrierSlug", openapi3.NewStringSchema())).
		WithProperty("externalCarrierReference", openapi3.NewStringSchema()).
		WithProperty("externalRateId", openapi3.NewStringSchema()).
		WithProperty("shippingFee", openapi3.NewFloat64Schema().WithMin(0)).
		WithProperty("currency", openapi3.NewStringSchema()).
		WithProperty("isInsured", openapi3.NewBoolSchema()).
		WithProperty("insuranceAmount", openapi3.NewFloat64Schema().WithMin(0)).
		WithProperty("estimatedDelivery", openapi3.NewStringSchema()).
		WithProperty("notes", openapi3.NewStringSchema()).
		WithProperty("metadata", openapi3.NewObjectSchema())
	s.Required = []string{"pickupAddress", "deliveryAddress", "items", "transportMode", "serviceLevel"}
	return s
}

func weightBracketSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("min", openapi3.NewFloat64Schema()).
		WithProperty("max", openapi3.NewFloat64Schema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("eta", openapi3.NewStringSchema())
}

func routeTemplatePayloadSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("originCity", openapi3.NewStringSchema()).
		WithProperty("destinationCity", openapi3.NewStringSchema()).
		WithProperty("transportMode", transportModeSchema()).
		WithProperty("serviceLevel", openapi3.NewStringSchema()).
		WithProperty("weightBrackets", openapi3.NewArraySchema().WithItems(weightBracketSchema())).
		WithProperty("metadata", openapi3.NewObjectSchema())
}

func routeTemplateSchema() *openapi3.Schema {
	return routeTemplatePayloadSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("createdAt", openapi3.NewDateTimeSchema())
}
