package postcodes_client

// lookupResponse is the envelope postcodes.io returns for both success and
// failure. On failure Result is null and Error is set.
type lookupResponse struct {
	Status int           `json:"status"`
	Error  string        `json:"error"`
	Result *lookupResult `json:"result"`
}

type lookupResult struct {
	Postcode  string   `json:"postcode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
