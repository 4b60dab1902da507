package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"firstName":      "First Name",
		"zipCode":        "Zip Code",
		"card_number":    "Card Number",
		"cardholderName": "Cardholder Name",
		"address-line2":  "Address Line 2",
		"cvv":            "Cvv",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
