// Package seo builds the machine-readable descriptors injected into track
// pages for search engines.
package seo

import (
	"fmt"
	"strings"

	"SqueezeFM/model"
)

// ISODuration re-encodes a duration in seconds into the ISO-8601 form the
// structured data expects (PTxMyS). Fractional seconds are truncated.
func ISODuration(seconds float32) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("PT%dM%dS", total/60, total%60)
}

// MusicRecording is the schema.org MusicRecording descriptor for one track.
type MusicRecording struct {
	Context  string `json:"@context"`
	Type     string `json:"@type"`
	Name     string `json:"name"`
	ByArtist Person `json:"byArtist"`
	Duration string `json:"duration"`
	Genre    string `json:"genre,omitempty"`
	URL      string `json:"url"`
}

// Person is a schema.org Person reference.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Product is the schema.org Product descriptor carrying the license offer.
type Product struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Offers      Offer  `json:"offers"`
}

// Offer is a schema.org Offer.
type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url"`
}

// TrackRecording builds the MusicRecording descriptor for a track page.
func TrackRecording(track *model.Track, siteURL string) MusicRecording {
	return MusicRecording{
		Context:  "https://schema.org",
		Type:     "MusicRecording",
		Name:     track.Title,
		ByArtist: Person{Type: "Person", Name: track.Artist},
		Duration: ISODuration(track.Duration),
		Genre:    strings.Join(track.Genre, ", "),
		URL:      fmt.Sprintf("%s/track/%d", siteURL, track.ID),
	}
}

// TrackProduct builds the Product descriptor for a track page, priced from
// the resolved standard license.
func TrackProduct(track *model.Track, pricing model.Pricing, siteURL string) Product {
	trackURL := fmt.Sprintf("%s/track/%d", siteURL, track.ID)
	return Product{
		Context:     "https://schema.org",
		Type:        "Product",
		Name:        fmt.Sprintf("%s - Royalty-Free License", track.Title),
		Description: fmt.Sprintf("Royalty-free music license for %q by %s.", track.Title, track.Artist),
		URL:         trackURL,
		Offers: Offer{
			Type:          "Offer",
			Price:         fmt.Sprintf("%d.%02d", pricing.AmountCents/100, pricing.AmountCents%100),
			PriceCurrency: pricing.Currency,
			Availability:  "https://schema.org/InStock",
			URL:           trackURL,
		},
	}
}
