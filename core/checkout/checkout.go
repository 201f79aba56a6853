// Package checkout constructs checkout links for the external payment
// processor. The storefront never captures payment itself; it hands the
// buyer off with the license variant, license type, user and track encoded
// as query parameters.
package checkout

import (
	"fmt"
	"net/url"
	"strconv"

	"SqueezeFM/model"
)

// ErrUnknownLicenseType is returned for a license type outside the catalog.
var ErrUnknownLicenseType = fmt.Errorf("unknown license type")

// VariantFor resolves the payment-processor variant identifier of a license
// tier on a track.
func VariantFor(track *model.Track, licenseType string) (string, error) {
	switch licenseType {
	case model.ProductTypeStandard:
		return track.StandardVariantID, nil
	case model.ProductTypeExtended:
		return track.ExtendedVariantID, nil
	case model.ProductTypeSubscription:
		return track.SubscriptionVariantID, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownLicenseType, licenseType)
	}
}

// BuildURL constructs the checkout URL for a license purchase.
func BuildURL(baseURL string, track *model.Track, licenseType string, userID int64) (string, error) {
	variant, err := VariantFor(track, licenseType)
	if err != nil {
		return "", err
	}
	if variant == "" {
		return "", fmt.Errorf("track %d has no %s license variant", track.ID, licenseType)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse checkout base URL: %w", err)
	}
	u.Path = "/buy/" + variant

	q := u.Query()
	q.Set("license", licenseType)
	q.Set("user_id", strconv.FormatInt(userID, 10))
	q.Set("track_id", strconv.FormatInt(track.ID, 10))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
