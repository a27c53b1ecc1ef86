package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// ValidAssetType contains the allowed asset types.
var ValidAssetType = map[string]bool{
	string(model.AssetStock): true, string(model.AssetFund): true,
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-&^=]{0,19}$`)

// NormalizeSymbol returns the canonical uppercase form of a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks a canonical symbol.
func ValidateSymbol(symbol string) error {
	if !symbolPattern.MatchString(NormalizeSymbol(symbol)) {
		return fmt.Errorf("invalid symbol: %q", symbol)
	}
	return nil
}

// ValidateCreateHolding validates a holding transaction request.
//
// Required fields:
//   - symbol: letters, digits and . - & ^ =, at most 20 characters
//   - quantity: non-zero, positive for a buy and negative for a sell
//   - unitPrice: positive
//   - assetType: stock or fund
//
// date is optional; when present it must be in YYYY-MM-DD format.
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}

	if len(req.DisplaySymbol) > 20 {
		errors["displaySymbol"] = "displaySymbol must be at most 20 characters"
	}
	if len(req.Name) > 100 {
		errors["name"] = "name must be at most 100 characters"
	}

	if req.Quantity.IsZero() {
		errors["quantity"] = "quantity must be non-zero"
	}

	if !req.UnitPrice.IsPositive() {
		errors["unitPrice"] = "unitPrice must be positive"
	}

	if _, err := ParseOptionalDate(req.Date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}

	if strings.TrimSpace(req.AssetType) == "" {
		errors["assetType"] = "assetType is required"
	} else if !ValidAssetType[req.AssetType] {
		errors["assetType"] = fmt.Sprintf("invalid assetType: %s", req.AssetType)
	}

	return fieldErrors(errors)
}
