package geo

import "math"

// earthRadiusMiles is the great-circle radius used for all distance math.
const earthRadiusMiles = 3956.0

// Miles returns the haversine distance between two coordinates in miles.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1 = radians(lat1), radians(lon1)
	lat2, lon2 = radians(lat2), radians(lon2)

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))
	return earthRadiusMiles * c
}

// RoundMiles rounds a distance to one decimal for API responses.
func RoundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
