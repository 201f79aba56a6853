package checkout

import (
	"errors"
	"net/url"
	"testing"

	"SqueezeFM/model"
)

func testTrack() *model.Track {
	return &model.Track{
		ID:                    42,
		Title:                 "Night Drive",
		StandardVariantID:     "var-std-42",
		ExtendedVariantID:     "var-ext-42",
		SubscriptionVariantID: "var-sub-42",
	}
}

func TestVariantFor(t *testing.T) {
	track := testTrack()

	cases := []struct {
		licenseType string
		want        string
	}{
		{model.ProductTypeStandard, "var-std-42"},
		{model.ProductTypeExtended, "var-ext-42"},
		{model.ProductTypeSubscription, "var-sub-42"},
	}
	for _, c := range cases {
		got, err := VariantFor(track, c.licenseType)
		if err != nil {
			t.Fatalf("VariantFor(%q) error: %v", c.licenseType, err)
		}
		if got != c.want {
			t.Errorf("VariantFor(%q) = %q, want %q", c.licenseType, got, c.want)
		}
	}
}

func TestVariantForUnknownType(t *testing.T) {
	_, err := VariantFor(testTrack(), "lifetime")
	if !errors.Is(err, ErrUnknownLicenseType) {
		t.Fatalf("want ErrUnknownLicenseType, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://pay.example.com", testTrack(), model.ProductTypeExtended, 9)
	if err != nil {
		t.Fatalf("BuildURL error: %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result not a URL: %v", err)
	}
	if u.Host != "pay.example.com" {
		t.Errorf("host = %q", u.Host)
	}
	if u.Path != "/buy/var-ext-42" {
		t.Errorf("path = %q", u.Path)
	}
	q := u.Query()
	if q.Get("license") != model.ProductTypeExtended {
		t.Errorf("license = %q", q.Get("license"))
	}
	if q.Get("user_id") != "9" {
		t.Errorf("user_id = %q", q.Get("user_id"))
	}
	if q.Get("track_id") != "42" {
		t.Errorf("track_id = %q", q.Get("track_id"))
	}
}

func TestBuildURLMissingVariant(t *testing.T) {
	track := testTrack()
	track.SubscriptionVariantID = ""

	_, err := BuildURL("https://pay.example.com", track, model.ProductTypeSubscription, 1)
	if err == nil {
		t.Fatal("want error for missing variant, got nil")
	}
}

func TestBuildURLUnknownLicense(t *testing.T) {
	_, err := BuildURL("https://pay.example.com", testTrack(), "bogus", 1)
	if !errors.Is(err, ErrUnknownLicenseType) {
		t.Fatalf("want ErrUnknownLicenseType, got %v", err)
	}
}
