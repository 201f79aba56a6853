package server

import (
	"net/http"

	"SqueezeFM/logger"
	"SqueezeFM/model"

	"github.com/gorilla/mux"
)

// GetPricingHandler serves the license pricing catalog with fallback
// literals filled in for any missing tier.
func (h *APIHandler) GetPricingHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"prices": h.resolvePrices()})
}

// GetLicensePriceHandler serves a single license tier, falling back to the
// built-in literal when the pricing catalog has no matching row.
func (h *APIHandler) GetLicensePriceHandler(w http.ResponseWriter, r *http.Request) {
	productType := mux.Vars(r)["product_type"]
	switch productType {
	case model.ProductTypeStandard, model.ProductTypeExtended, model.ProductTypeSubscription:
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown license type")
		return
	}

	price, err := h.pricingRepo.GetByProductType(productType)
	if err != nil {
		logger.Error("Failed to load license price", logger.String("productType", productType), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load license price")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"price": price})
}

// GetCouponHandler serves one promotional code, active codes only.
func (h *APIHandler) GetCouponHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Coupon code is required")
		return
	}

	coupon, err := h.couponRepo.GetActiveByCode(code)
	if err != nil {
		logger.Error("Failed to load coupon", logger.String("code", code), logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load coupon")
		return
	}
	if coupon == nil {
		respondWithError(w, http.StatusNotFound, "Coupon not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"coupon": coupon})
}
