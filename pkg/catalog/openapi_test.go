package catalog_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/model"
)

const petstoreDocument = `{
  "openapi": "3.0.0",
  "info": { "title": "Shop", "version": "1.0.0" },
  "paths": {
    "/customers": {
      "post": {
        "operationId": "createCustomer",
        "summary": "New Customer",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "plan"],
                "properties": {
                  "name": { "type": "string", "title": "Full Name", "x-order": 1 },
                  "plan": { "type": "string", "enum": ["free", "pro"], "x-order": 2 },
                  "birthday": { "type": "string", "format": "date" },
                  "secret": { "type": "string", "format": "password" },
                  "seats": { "type": "integer" },
                  "newsletter": { "type": "boolean" },
                  "tags": { "type": "array", "items": { "type": "string" } }
                }
              }
            }
          }
        },
        "responses": { "201": { "description": "created" } }
      },
      "get": {
        "operationId": "listCustomers",
        "responses": { "200": { "description": "ok" } }
      }
    },
    "/notes": {
      "post": {
        "requestBody": {
          "content": {
            "application/json": {
              "schema": { "type": "object", "properties": { "body": { "type": "string" } } }
            }
          }
        },
        "responses": { "201": { "description": "created" } }
      }
    }
  }
}`

func TestFromOpenAPIBuildsFormTypesFromRequestBodies(t *testing.T) {
	cat, err := catalog.FromOpenAPI(context.Background(), []byte(petstoreDocument))
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	if diff := cmp.Diff([]string{"createCustomer", "post:/notes"}, cat.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	customer, _ := cat.Schema("createCustomer")
	if customer.Title != "New Customer" {
		t.Fatalf("unexpected title %q", customer.Title)
	}
	want := []model.FieldDescriptor{
		{Name: "name", Kind: model.FieldKindText, Label: "Full Name", Required: true},
		{Name: "plan", Kind: model.FieldKindDropdown, Label: "Plan", Required: true, Options: []string{"free", "pro"}},
		{Name: "birthday", Kind: model.FieldKindDate, Label: "Birthday"},
		{Name: "newsletter", Kind: model.FieldKindDropdown, Label: "Newsletter", Options: []string{"true", "false"}},
		{Name: "seats", Kind: model.FieldKindNumber, Label: "Seats"},
		{Name: "secret", Kind: model.FieldKindPassword, Label: "Secret"},
	}
	if diff := cmp.Diff(want, customer.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	notes, _ := cat.Schema("post:/notes")
	if notes.Title == "" || len(notes.Fields) != 1 {
		t.Fatalf("unexpected notes schema: %+v", notes)
	}
}

func TestFromOpenAPIFiltersOperations(t *testing.T) {
	cat, err := catalog.FromOpenAPI(context.Background(), []byte(petstoreDocument), catalog.WithOperations("createCustomer"))
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"createCustomer"}, cat.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	if _, err := catalog.FromOpenAPI(context.Background(), []byte(petstoreDocument), catalog.WithOperations("missing")); err == nil {
		t.Fatalf("expected error when no operation matches")
	}
}

func TestFromOpenAPIHonoursContextAndEmptyInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := catalog.FromOpenAPI(ctx, []byte(petstoreDocument)); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := catalog.FromOpenAPI(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
