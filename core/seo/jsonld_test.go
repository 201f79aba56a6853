package seo

import (
	"strings"
	"testing"

	"SqueezeFM/model"
)

func TestISODuration(t *testing.T) {
	cases := []struct {
		seconds float32
		want    string
	}{
		{154, "PT2M34S"},
		{60, "PT1M0S"},
		{59.9, "PT0M59S"},
		{0, "PT0M0S"},
		{-5, "PT0M0S"},
		{3601, "PT60M1S"},
	}
	for _, c := range cases {
		got := ISODuration(c.seconds)
		if got != c.want {
			t.Errorf("ISODuration(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestTrackRecording(t *testing.T) {
	track := &model.Track{
		ID:       42,
		Title:    "Night Drive",
		Artist:   "Mira Vale",
		Duration: 154,
		Genre:    model.TagList{"Synthwave", "Electronic"},
	}

	rec := TrackRecording(track, "https://squeezefm.example")

	if rec.Context != "https://schema.org" || rec.Type != "MusicRecording" {
		t.Errorf("unexpected schema envelope: %q %q", rec.Context, rec.Type)
	}
	if rec.Name != "Night Drive" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.ByArtist.Type != "Person" || rec.ByArtist.Name != "Mira Vale" {
		t.Errorf("byArtist = %+v", rec.ByArtist)
	}
	if rec.Duration != "PT2M34S" {
		t.Errorf("duration = %q", rec.Duration)
	}
	if rec.Genre != "Synthwave, Electronic" {
		t.Errorf("genre = %q", rec.Genre)
	}
	if rec.URL != "https://squeezefm.example/track/42" {
		t.Errorf("url = %q", rec.URL)
	}
}

func TestTrackProduct(t *testing.T) {
	track := &model.Track{ID: 7, Title: "Open Fields", Artist: "Arlo Finch"}
	pricing := model.Pricing{ProductType: model.ProductTypeStandard, AmountCents: 4900, Currency: "USD"}

	prod := TrackProduct(track, pricing, "https://squeezefm.example")

	if prod.Type != "Product" {
		t.Errorf("type = %q", prod.Type)
	}
	if !strings.HasPrefix(prod.Name, "Open Fields") {
		t.Errorf("name = %q", prod.Name)
	}
	if prod.URL != "https://squeezefm.example/track/7" || prod.Offers.URL != prod.URL {
		t.Errorf("urls = %q / %q", prod.URL, prod.Offers.URL)
	}
	if prod.Offers.Price != "49.00" {
		t.Errorf("price = %q", prod.Offers.Price)
	}
	if prod.Offers.PriceCurrency != "USD" {
		t.Errorf("currency = %q", prod.Offers.PriceCurrency)
	}
	if prod.Offers.Availability != "https://schema.org/InStock" {
		t.Errorf("availability = %q", prod.Offers.Availability)
	}
}

func TestTrackProductSubUnitPrice(t *testing.T) {
	track := &model.Track{ID: 1, Title: "Loop"}
	pricing := model.Pricing{AmountCents: 1999, Currency: "USD"}

	prod := TrackProduct(track, pricing, "https://squeezefm.example")
	if prod.Offers.Price != "19.99" {
		t.Errorf("price = %q, want 19.99", prod.Offers.Price)
	}
}
