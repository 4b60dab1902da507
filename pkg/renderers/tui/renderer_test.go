package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

func modelKind(kind string) model.FieldKind {
	return model.FieldKind(kind)
}

func TestProgressBar(t *testing.T) {
	cases := map[int]string{
		0:   "[----------]",
		50:  "[#####-----]",
		67:  "[######----]",
		100: "[##########]",
		140: "[##########]",
	}
	for percent, want := range cases {
		if got := progressBar(percent, 10); got != want {
			t.Fatalf("progressBar(%d) = %q, want %q", percent, got, want)
		}
	}
}

func TestRenderer_RendersFieldsErrorsAndRecords(t *testing.T) {
	e, err := engine.New(catalog.MustDefault(), engine.WithInitialFormType("paymentInfo"))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	for name, value := range map[string]string{
		"cardNumber": "4111", "expiryDate": "2030-01-31", "cvv": "999", "cardholderName": "Ann",
	} {
		if err := e.UpdateField(name, value); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.UpdateField("cardNumber", "5500"); err != nil {
		t.Fatalf("update: %v", err)
	}
	_ = e.Submit()

	out, err := New(WithBarWidth(4), WithTheme(Theme{ErrorPrefix: "! "})).Render(context.Background(), e.Snapshot(), render.RenderOptions{Notice: "hello"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, fragment := range []string{
		"Payment Information (paymentInfo)\n",
		"hello\n",
		"Card Number *",
		"5500",
		"! Expiry Date is required",
		"[#---] 25% Complete",
		"Submitted Data for paymentInfo",
		"****",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, text)
		}
	}
	if strings.Contains(text, "999") {
		t.Fatalf("password value leaked:\n%s", text)
	}
}

func TestRecordSummaries(t *testing.T) {
	e, err := engine.New(catalog.MustDefault())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	_ = e.UpdateField("firstName", "Ann")
	_ = e.UpdateField("lastName", "Lee")
	if err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	got := RecordSummaries(e.Snapshot())
	if len(got) != 1 || got[0] != "#1 Ann, Lee" {
		t.Fatalf("unexpected summaries %q", got)
	}
}
