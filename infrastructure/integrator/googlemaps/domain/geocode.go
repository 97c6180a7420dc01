package mapsdomain

import "errors"

const StatusOK = "OK"

// ErrAddressNotFound indica que a Geocoding API não encontrou o endereço
var ErrAddressNotFound = errors.New("endereço não encontrado")

// GeocodeResponse é o corpo devolvido por /geocode/json
type GeocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
