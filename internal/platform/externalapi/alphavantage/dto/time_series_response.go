// Package dto defines data transfer objects for the Alpha Vantage API
// responses.
package dto

// Envelope carries the provider's in-body error fields. Alpha Vantage
// returns HTTP 200 for most failures: "Error Message" for rejected requests
// (unknown symbol, bad key) and "Note"/"Information" when the call quota is
// exceeded.
type Envelope struct {
	ErrorMessage string `json:"Error Message,omitempty"`
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
}

// Bar is one bar value object inside a time-series map. The map key is the
// bar timestamp; all values are string-formatted.
type Bar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
