package yahoo

// chartResponse is the subset of the v8 chart API response used for current prices.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// quoteResponse is the subset of the v7 multi-symbol quote API response.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// proxyEnvelope is the wrapper returned by allorigins-style proxies,
// which deliver the upstream body as a JSON string.
type proxyEnvelope struct {
	Contents *string `json:"contents"`
	Status   *struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
}
